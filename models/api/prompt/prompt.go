package promptapimodels

import (
	"strings"

	"github.com/pkg/errors"
	"promptsync-backend/models"
)

type GenerateRequest struct {
	LazyPrompt   string               `json:"lazy_prompt"`   // Исходный ленивый промт
	Purpose      models.Purpose       `json:"purpose"`       // Назначение: standard, reasoning, research, brainstorming, drafting, code
	TargetModels []models.TargetModel `json:"target_models"` // Целевые модели: chatgpt, claude, grok, gemini
}

// Validate проверяет только форму запроса, содержательные проверки выполняет конвейер
func (r GenerateRequest) Validate() error {
	if strings.TrimSpace(r.LazyPrompt) == "" {
		return errors.New("не указан текст промта")
	}
	if len(r.TargetModels) == 0 {
		return errors.New("не выбрана ни одна целевая модель")
	}
	return nil
}

func (r GenerateRequest) ToDomain() models.GenerationRequest {
	return models.GenerationRequest{
		LazyPrompt: models.LazyPrompt{
			Text:    r.LazyPrompt,
			Purpose: r.Purpose,
		},
		TargetModels: r.TargetModels,
	}
}

type ImproveRequest struct {
	GenerateRequest
	Questions []string `json:"questions"` // Вопросы предыдущего раунда
	Answers   []string `json:"answers"`   // Ответы в том же порядке
}

func (r ImproveRequest) Validate() error {
	if err := r.GenerateRequest.Validate(); err != nil {
		return err
	}
	if len(r.Questions) != models.QuestionSetSize {
		return errors.Errorf("ожидается %d вопроса", models.QuestionSetSize)
	}
	if len(r.Answers) != len(r.Questions) {
		return models.ErrAnswersMismatch
	}
	return nil
}

type QuestionsRequest struct {
	LazyPrompt string         `json:"lazy_prompt"`
	Purpose    models.Purpose `json:"purpose"`
	Artifact   string         `json:"artifact"` // Сгенерированный супер-промт, по которому строятся вопросы
}

func (r QuestionsRequest) Validate() error {
	if strings.TrimSpace(r.LazyPrompt) == "" {
		return errors.New("не указан текст промта")
	}
	if strings.TrimSpace(r.Artifact) == "" {
		return errors.New("не указан супер-промт")
	}
	return nil
}

type QuestionsView struct {
	Questions []string `json:"questions"`
	Fallback  bool     `json:"fallback"` // Вопросы взяты из стандартного набора
}

type AnalyzeRequest struct {
	Prompt string `json:"prompt"`
}

func (r AnalyzeRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return errors.New("не указан текст промта")
	}
	return nil
}

type AnalyzeView struct {
	models.PromptAnalysis
	Fallback bool `json:"fallback"` // Анализ выполнен локальной эвристикой
}

type LinkView struct {
	URL string `json:"url"`
}
