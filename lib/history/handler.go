package history

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	historystore "promptsync-backend/lib/history/store"
	"promptsync-backend/models"
	historyapimodels "promptsync-backend/models/api/history"
	dbmodels "promptsync-backend/models/db"
)

var ErrNotFound = errors.New("запись истории не найдена")

type Limits struct {
	Default int
	Max     int
}

type Provider interface {
	// Save сохраняет снимок сессии, ошибка всегда оборачивает historystore.ErrPersistenceFailure
	Save(ctx context.Context, userID string, session models.GenerationSession, improvement *models.ImprovementContext) (string, error)
	List(ctx context.Context, userID string, filter historyapimodels.HistoryFilter) ([]historyapimodels.HistoryItemView, error)
	Get(ctx context.Context, userID, id string) (*historyapimodels.HistoryView, error)
	GetRecord(ctx context.Context, userID, id string) (*dbmodels.PromptHistory, error)
	Delete(ctx context.Context, userID, id string) error
}

func NewHandler(store historystore.Provider, limits Limits) Provider {
	if limits.Default <= 0 {
		limits.Default = 20
	}
	if limits.Max <= 0 {
		limits.Max = 100
	}
	return impl{
		store:  store,
		limits: limits,
	}
}

type impl struct {
	store  historystore.Provider
	limits Limits
}

func (i impl) Save(ctx context.Context, userID string, session models.GenerationSession, improvement *models.ImprovementContext) (string, error) {
	rec := dbmodels.PromptHistory{
		BaseUserModel: dbmodels.BaseUserModel{
			UserID: userID,
		},
		LazyPrompt:     session.LazyPrompt.Text,
		Purpose:        session.LazyPrompt.Purpose,
		SelectedModels: models.TargetModelsToStrings(session.TargetModels),
		SuperPrompts:   dbmodels.SuperPrompts{},
		Questions:      append([]string{}, session.Questions...),
		Tier:           session.Tier,
	}
	for m, text := range session.Texts() {
		rec.SuperPrompts[string(m)] = text
	}
	if !improvement.IsEmpty() {
		for _, qa := range improvement.Answers {
			rec.Answers = append(rec.Answers, qa.Answer)
		}
	}
	id, err := i.store.Create(ctx, rec)
	if err != nil {
		if errors.Is(err, historystore.ErrPersistenceFailure) {
			return "", err
		}
		return "", errors.Wrap(historystore.ErrPersistenceFailure, err.Error())
	}
	return id, nil
}

func (i impl) List(ctx context.Context, userID string, filter historyapimodels.HistoryFilter) ([]historyapimodels.HistoryItemView, error) {
	limit := filter.GetLimit(i.limits.Default, i.limits.Max)
	list, err := i.store.List(ctx, userID, filter.Search, limit)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("ошибка получения истории генераций")
		return nil, errors.New("ошибка получения истории генераций")
	}
	result := make([]historyapimodels.HistoryItemView, 0, len(list))
	for _, rec := range list {
		result = append(result, historyapimodels.ConvertItem(rec))
	}
	return result, nil
}

func (i impl) GetRecord(ctx context.Context, userID, id string) (*dbmodels.PromptHistory, error) {
	rec, err := i.store.GetByID(ctx, userID, id)
	if err != nil {
		log.WithError(err).
			WithField("user_id", userID).
			WithField("history_id", id).
			Error("ошибка получения записи истории")
		return nil, errors.New("ошибка получения записи истории")
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (i impl) Get(ctx context.Context, userID, id string) (*historyapimodels.HistoryView, error) {
	rec, err := i.GetRecord(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	view := historyapimodels.Convert(*rec)
	return &view, nil
}

func (i impl) Delete(ctx context.Context, userID, id string) error {
	deleted, err := i.store.Delete(ctx, userID, id)
	if err != nil {
		log.WithError(err).
			WithField("user_id", userID).
			WithField("history_id", id).
			Error("ошибка удаления записи истории")
		return errors.New("ошибка удаления записи истории")
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
