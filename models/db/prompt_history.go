package dbmodels

import (
	"database/sql/driver"
	"encoding/json"
	"promptsync-backend/models"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// PromptHistory неизменяемый снимок одной сессии генерации
type PromptHistory struct {
	BaseUserModel
	LazyPrompt     string          `gorm:"type:text"`
	Purpose        models.Purpose  `gorm:"type:varchar(50)"`
	SelectedModels pq.StringArray  `gorm:"type:text[]"`
	SuperPrompts   SuperPrompts    `gorm:"type:jsonb"`
	Questions      pq.StringArray  `gorm:"type:text[]"`
	Answers        pq.StringArray  `gorm:"type:text[]" comment:"Ответы раунда уточнения, пусто для первичной генерации"`
	Tier           models.UserTier `gorm:"type:varchar(20)"`
}

// SuperPrompts целевая модель -> сгенерированный текст
type SuperPrompts map[string]string

func (j SuperPrompts) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *SuperPrompts) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.Errorf("неподдерживаемый тип для SuperPrompts: %T", value)
	}
	return json.Unmarshal(data, j)
}

func (r PromptHistory) TargetModels() []models.TargetModel {
	return models.TargetModelsFromStrings(r.SelectedModels)
}

func (r PromptHistory) Texts() map[models.TargetModel]string {
	out := make(map[models.TargetModel]string, len(r.SuperPrompts))
	for k, v := range r.SuperPrompts {
		out[models.TargetModel(k)] = v
	}
	return out
}
