package models

import "github.com/pkg/errors"

type TargetModel string

const (
	TargetChatGPT TargetModel = "chatgpt"
	TargetClaude  TargetModel = "claude"
	TargetGrok    TargetModel = "grok"
	TargetGemini  TargetModel = "gemini"
)

var targetModelCatalog = []TargetModel{TargetChatGPT, TargetClaude, TargetGrok, TargetGemini}

var targetModelHumanName = map[TargetModel]string{
	TargetChatGPT: "ChatGPT",
	TargetClaude:  "Claude",
	TargetGrok:    "Grok",
	TargetGemini:  "Gemini",
}

// TargetModelCatalog фиксированный каталог целевых моделей
func TargetModelCatalog() []TargetModel {
	out := make([]TargetModel, len(targetModelCatalog))
	copy(out, targetModelCatalog)
	return out
}

func (m TargetModel) ToHuman() string {
	if human, exist := targetModelHumanName[m]; exist {
		return human
	}
	return string(m)
}

func (m TargetModel) IsValid() bool {
	_, ok := targetModelHumanName[m]
	return ok
}

// ValidateTargetModels проверяет что набор не пуст, без повторов и из каталога
func ValidateTargetModels(list []TargetModel) error {
	if len(list) == 0 {
		return errors.New("не выбрана ни одна целевая модель")
	}
	seen := make(map[TargetModel]struct{}, len(list))
	for _, m := range list {
		if !m.IsValid() {
			return errors.Errorf("неизвестная целевая модель: %q", string(m))
		}
		if _, dup := seen[m]; dup {
			return errors.Errorf("целевая модель указана повторно: %q", string(m))
		}
		seen[m] = struct{}{}
	}
	return nil
}

func TargetModelsToStrings(list []TargetModel) []string {
	out := make([]string, 0, len(list))
	for _, m := range list {
		out = append(out, string(m))
	}
	return out
}

func TargetModelsFromStrings(list []string) []TargetModel {
	out := make([]TargetModel, 0, len(list))
	for _, m := range list {
		out = append(out, TargetModel(m))
	}
	return out
}
