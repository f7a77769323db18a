package filesdbstorage

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "promptsync-backend/models/db"
)

type Provider interface {
	SaveFile(ctx context.Context, rec dbmodels.ExportFile) (id string, err error)
	// GetByHistory возвращает nil, nil если выгрузка ещё не загружалась
	GetByHistory(ctx context.Context, userID, historyID string, format dbmodels.ExportFormat) (*dbmodels.ExportFile, error)
}

type impl struct {
	db *gorm.DB
}

func NewInstance(db *gorm.DB) Provider {
	return &impl{db: db}
}

func (i impl) SaveFile(ctx context.Context, rec dbmodels.ExportFile) (id string, err error) {
	err = i.db.WithContext(ctx).Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByHistory(ctx context.Context, userID, historyID string, format dbmodels.ExportFormat) (*dbmodels.ExportFile, error) {
	rec := dbmodels.ExportFile{}
	err := i.db.
		WithContext(ctx).
		Model(&dbmodels.ExportFile{}).
		Where("user_id = ? AND history_id = ? AND format = ?", userID, historyID, format).
		Order("created_at desc").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}
