package historystore

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	dbmodels "promptsync-backend/models/db"
)

// ErrPersistenceFailure запись истории не сохранена, результат генерации при этом не теряется
var ErrPersistenceFailure = errors.New("ошибка сохранения истории генераций")

type Provider interface {
	Create(ctx context.Context, rec dbmodels.PromptHistory) (id string, err error)
	List(ctx context.Context, userID, search string, limit int) ([]dbmodels.PromptHistory, error)
	// GetByID возвращает nil, nil если запись не найдена или принадлежит другому пользователю
	GetByID(ctx context.Context, userID, id string) (*dbmodels.PromptHistory, error)
	Delete(ctx context.Context, userID, id string) (bool, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(ctx context.Context, rec dbmodels.PromptHistory) (id string, err error) {
	err = i.db.
		WithContext(ctx).
		Save(&rec).
		Error
	if err != nil {
		return "", errors.Wrap(ErrPersistenceFailure, err.Error())
	}
	return rec.ID, nil
}

func (i impl) List(ctx context.Context, userID, search string, limit int) (list []dbmodels.PromptHistory, err error) {
	list = []dbmodels.PromptHistory{}
	tx := i.db.
		WithContext(ctx).
		Model(dbmodels.PromptHistory{}).
		Where("user_id = ?", userID)
	if search != "" {
		tx = tx.Where("lazy_prompt ILIKE ?", ContainsPattern(search))
	}
	err = tx.
		Order("created_at desc").
		Limit(limit).
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) GetByID(ctx context.Context, userID, id string) (*dbmodels.PromptHistory, error) {
	rec := dbmodels.PromptHistory{}
	err := i.db.
		WithContext(ctx).
		Model(dbmodels.PromptHistory{}).
		Where("id = ?", id).
		Where("user_id = ?", userID).
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

func (i impl) Delete(ctx context.Context, userID, id string) (bool, error) {
	tx := i.db.
		WithContext(ctx).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Delete(&dbmodels.PromptHistory{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// ContainsPattern шаблон ILIKE для поиска подстроки, спецсимволы шаблона экранируются
func ContainsPattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}
