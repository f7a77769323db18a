package usagestore

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"promptsync-backend/models"
	dbmodels "promptsync-backend/models/db"
)

type Provider interface {
	// Get возвращает nil, nil если пользователь не найден
	Get(ctx context.Context, userID string) (*models.UsageRecord, error)
	// CompareAndSwap записывает next только если текущая версия равна expectedVersion
	CompareAndSwap(ctx context.Context, next models.UsageRecord, expectedVersion int64) (bool, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Get(ctx context.Context, userID string) (*models.UsageRecord, error) {
	rec := dbmodels.UserProfile{}
	err := i.db.
		WithContext(ctx).
		Model(&dbmodels.UserProfile{}).
		Select("id", "tier", "daily_usage", "last_usage_date", "usage_version").
		Where("id = ?", userID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	usage := rec.ToUsageRecord()
	return &usage, nil
}

func (i impl) CompareAndSwap(ctx context.Context, next models.UsageRecord, expectedVersion int64) (bool, error) {
	updMap := map[string]interface{}{
		"daily_usage":     next.DailyUsage,
		"last_usage_date": next.LastUsageDate,
		"usage_version":   next.Version,
	}
	tx := i.db.
		WithContext(ctx).
		Model(&dbmodels.UserProfile{}).
		Where("id = ? AND usage_version = ?", next.UserID, expectedVersion).
		Updates(updMap)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected == 1, nil
}
