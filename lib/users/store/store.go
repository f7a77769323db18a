package usersstore

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "promptsync-backend/models/db"
)

var ErrEmailTaken = errors.New("пользователь с такой почтой уже существует")

type Provider interface {
	Create(ctx context.Context, rec dbmodels.UserProfile) (userID string, err error)
	GetByID(ctx context.Context, userID string) (*dbmodels.UserProfile, error)
	FindByEmail(ctx context.Context, email string) (*dbmodels.UserProfile, error)
	Update(ctx context.Context, userID string, updMap map[string]interface{}) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(ctx context.Context, rec dbmodels.UserProfile) (userID string, err error) {
	if rec.Email == "" {
		return "", errors.New("email не указан")
	}
	r, err := i.FindByEmail(ctx, rec.Email)
	if err != nil {
		return "", err
	}
	if r != nil {
		return "", ErrEmailTaken
	}
	err = i.db.
		WithContext(ctx).
		Save(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", ErrEmailTaken
		}
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(ctx context.Context, userID string) (*dbmodels.UserProfile, error) {
	rec := dbmodels.UserProfile{}
	err := i.db.
		WithContext(ctx).
		Where("id = ?", userID).
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

func (i impl) FindByEmail(ctx context.Context, email string) (*dbmodels.UserProfile, error) {
	rec := dbmodels.UserProfile{}
	err := i.db.
		WithContext(ctx).
		Where("email = ?", email).
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

func (i impl) Update(ctx context.Context, userID string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		WithContext(ctx).
		Model(&dbmodels.UserProfile{BaseModel: dbmodels.BaseModel{ID: userID}}).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}
