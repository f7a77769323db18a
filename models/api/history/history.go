package historyapimodels

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	jsonexport "promptsync-backend/lib/export/json-export"
	"promptsync-backend/models"
	dbmodels "promptsync-backend/models/db"
)

type HistoryFilter struct {
	Limit  int    `json:"limit" query:"limit"`   // Количество записей
	Search string `json:"search" query:"search"` // Подстрока ленивого промта, без учёта регистра
}

// GetLimit лимит с учётом значения по умолчанию и верхней границы
func (f HistoryFilter) GetLimit(defaultLimit, maxLimit int) int {
	limit := defaultLimit
	if f.Limit > 0 {
		limit = f.Limit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return limit
}

type HistoryItemView struct {
	ID           string               `json:"id"`            // Идентификатор записи
	LazyPrompt   string               `json:"lazy_prompt"`   // Исходный промт
	Purpose      models.Purpose       `json:"purpose"`       // Назначение
	TargetModels []models.TargetModel `json:"target_models"` // Целевые модели
	Refined      bool                 `json:"refined"`       // Результат раунда уточнения
	Tier         models.UserTier      `json:"tier"`          // Тариф на момент генерации
	CreatedAt    time.Time            `json:"created_at"`    // Дата создания
}

type HistoryView struct {
	HistoryItemView
	SuperPrompts map[models.TargetModel]string `json:"super_prompts"` // Сгенерированные супер-промты
	Questions    []string                      `json:"questions"`     // Уточняющие вопросы
	Answers      []string                      `json:"answers"`       // Ответы пользователя
}

func ConvertItem(rec dbmodels.PromptHistory) HistoryItemView {
	return HistoryItemView{
		ID:           rec.ID,
		LazyPrompt:   rec.LazyPrompt,
		Purpose:      rec.Purpose,
		TargetModels: rec.TargetModels(),
		Refined:      len(rec.Answers) > 0,
		Tier:         rec.Tier,
		CreatedAt:    rec.CreatedAt,
	}
}

func Convert(rec dbmodels.PromptHistory) HistoryView {
	return HistoryView{
		HistoryItemView: ConvertItem(rec),
		SuperPrompts:    rec.Texts(),
		Questions:       append([]string{}, rec.Questions...),
		Answers:         append([]string{}, rec.Answers...),
	}
}

// SnapshotExportRequest несохранённая сессия, выгружаемая как есть
type SnapshotExportRequest struct {
	LazyPrompt   string                        `json:"lazy_prompt"`
	Purpose      models.Purpose                `json:"purpose"`
	TargetModels []models.TargetModel          `json:"target_models"`
	SuperPrompts map[models.TargetModel]string `json:"super_prompts"`
	Tier         models.UserTier               `json:"tier"`
}

func (r SnapshotExportRequest) Validate() error {
	if strings.TrimSpace(r.LazyPrompt) == "" {
		return errors.New("не указан текст промта")
	}
	if err := r.Purpose.Validate(); err != nil {
		return err
	}
	if !r.Tier.IsValid() {
		return errors.Errorf("неизвестный тариф: %q", string(r.Tier))
	}
	if err := models.ValidateTargetModels(r.TargetModels); err != nil {
		return err
	}
	if len(r.SuperPrompts) != len(r.TargetModels) {
		return errors.New("набор супер-промтов не совпадает с выбранными моделями")
	}
	for _, m := range r.TargetModels {
		if _, ok := r.SuperPrompts[m]; !ok {
			return errors.Errorf("нет супер-промта для модели %q", string(m))
		}
	}
	return nil
}

func (r SnapshotExportRequest) ToSnapshot() jsonexport.Snapshot {
	return jsonexport.Snapshot{
		LazyPrompt:   r.LazyPrompt,
		Purpose:      r.Purpose,
		TargetModels: r.TargetModels,
		SuperPrompts: r.SuperPrompts,
		Tier:         r.Tier,
	}
}
