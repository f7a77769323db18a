package jsonexport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/pkg/errors"
	"promptsync-backend/models"
	dbmodels "promptsync-backend/models/db"
)

// TimeLayout ISO-8601 в UTC с миллисекундами
const TimeLayout = "2006-01-02T15:04:05.000Z"

// Snapshot снимок сессии генерации для выгрузки
type Snapshot struct {
	LazyPrompt   string
	Purpose      models.Purpose
	TargetModels []models.TargetModel
	SuperPrompts map[models.TargetModel]string
	Tier         models.UserTier
}

// document порядок полей задаёт формат файла
type document struct {
	LazyPrompt            string         `json:"lazyPrompt"`
	PurposeType           string         `json:"purposeType"`
	SelectedTargetModels  []string       `json:"selectedTargetModels"`
	GeneratedSuperPrompts orderedPrompts `json:"generatedSuperPrompts"`
	UserTier              string         `json:"userTier"`
	ExportedAt            string         `json:"exportedAt"`
}

func FromSession(session models.GenerationSession) Snapshot {
	return Snapshot{
		LazyPrompt:   session.LazyPrompt.Text,
		Purpose:      session.LazyPrompt.Purpose,
		TargetModels: session.TargetModels,
		SuperPrompts: session.Texts(),
		Tier:         session.Tier,
	}
}

func FromHistory(rec dbmodels.PromptHistory) Snapshot {
	return Snapshot{
		LazyPrompt:   rec.LazyPrompt,
		Purpose:      rec.Purpose,
		TargetModels: rec.TargetModels(),
		SuperPrompts: rec.Texts(),
		Tier:         rec.Tier,
	}
}

// orderedPrompts объект супер-промтов с ключами в порядке выбранных моделей
type orderedPrompts struct {
	keys   []string
	values map[string]string
}

func newOrderedPrompts(order []models.TargetModel, prompts map[models.TargetModel]string) orderedPrompts {
	out := orderedPrompts{values: make(map[string]string, len(prompts))}
	for m, text := range prompts {
		out.values[string(m)] = text
	}
	for _, m := range order {
		if _, ok := prompts[m]; ok {
			out.keys = append(out.keys, string(m))
		}
	}
	// модели вне выбранного набора идут в конце
	extra := []string{}
	for m := range prompts {
		if !containsModel(order, m) {
			extra = append(extra, string(m))
		}
	}
	sort.Strings(extra)
	out.keys = append(out.keys, extra...)
	return out
}

func (o orderedPrompts) MarshalJSON() ([]byte, error) {
	buf := bytes.Buffer{}
	buf.WriteByte('{')
	for n, key := range o.keys {
		if n > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(&buf, key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeString(&buf, o.values[key]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeString(buf *bytes.Buffer, value string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}

func containsModel(list []models.TargetModel, m models.TargetModel) bool {
	for _, item := range list {
		if item == m {
			return true
		}
	}
	return false
}

// Export документ с отступом в два пробела, без экранирования html символов и без перевода строки в конце
func Export(snapshot Snapshot, exportedAt time.Time) ([]byte, error) {
	doc := document{
		LazyPrompt:            snapshot.LazyPrompt,
		PurposeType:           string(snapshot.Purpose),
		SelectedTargetModels:  models.TargetModelsToStrings(snapshot.TargetModels),
		GeneratedSuperPrompts: newOrderedPrompts(snapshot.TargetModels, snapshot.SuperPrompts),
		UserTier:              string(snapshot.Tier),
		ExportedAt:            exportedAt.UTC().Format(TimeLayout),
	}
	buf := bytes.Buffer{}
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования json выгрузки")
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func FileName(exportedAt time.Time) string {
	return fmt.Sprintf("promptsync-super-prompts-%d.json", exportedAt.UnixMilli())
}
