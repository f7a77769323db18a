package ailogstore

import (
	"context"
	"time"

	"gorm.io/gorm"
	dbmodels "promptsync-backend/models/db"
)

type Provider interface {
	Save(rec dbmodels.AiLog) (string, error)
	// DeleteOlderThan удаляет записи журнала созданные раньше moment, возвращает число удаленных
	DeleteOlderThan(ctx context.Context, moment time.Time) (int64, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Save(rec dbmodels.AiLog) (string, error) {
	err := i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) DeleteOlderThan(ctx context.Context, moment time.Time) (int64, error) {
	tx := i.db.
		WithContext(ctx).
		Where("created_at < ?", moment).
		Delete(&dbmodels.AiLog{})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}
