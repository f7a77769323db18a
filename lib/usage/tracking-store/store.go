package usagetrackingstore

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"promptsync-backend/models"
	dbmodels "promptsync-backend/models/db"
)

type Provider interface {
	Increment(ctx context.Context, userID, usageDate string, tier models.UserTier) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Increment(ctx context.Context, userID, usageDate string, tier models.UserTier) error {
	rec := dbmodels.UsageTracking{
		UserID:      userID,
		UsageDate:   usageDate,
		PromptCount: 1,
		Tier:        tier,
	}
	return i.db.
		WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "usage_date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"prompt_count": gorm.Expr("usage_tracking.prompt_count + 1"),
				"tier":         tier,
			}),
		}).
		Create(&rec).
		Error
}
