package models

import (
	"time"

	"github.com/pkg/errors"
)

type GrammarCorrection struct {
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
}

// PreprocessResult результат классификации и нормализации ленивого промта
type PreprocessResult struct {
	CorrectedPrompt    string              `json:"corrected_prompt"`
	Domain             Domain              `json:"domain"`
	DomainLabel        string              `json:"domain_label"`
	Intent             string              `json:"intent"`
	Complexity         Complexity          `json:"complexity"`
	SuggestedSections  []string            `json:"suggested_sections"`
	GrammarCorrections []GrammarCorrection `json:"grammar_corrections"`
	SectionRationale   map[string]string   `json:"section_rationale"`
}

// QuestionSetSize количество уточняющих вопросов в одном раунде
const QuestionSetSize = 3

type QuestionSet struct {
	Questions []string `json:"questions"`
}

type QuestionAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ImprovementContext ответы пользователя, позиционно сопоставленные вопросам
type ImprovementContext struct {
	Answers []QuestionAnswer `json:"answers"`
}

func (c *ImprovementContext) IsEmpty() bool {
	return c == nil || len(c.Answers) == 0
}

var ErrAnswersMismatch = errors.New("количество ответов не совпадает с количеством вопросов")

// NewImprovementContext сопоставляет ответы вопросам, количество должно совпадать точно
func NewImprovementContext(questions, answers []string) (*ImprovementContext, error) {
	if len(questions) != QuestionSetSize || len(answers) != len(questions) {
		return nil, ErrAnswersMismatch
	}
	ic := &ImprovementContext{Answers: make([]QuestionAnswer, 0, len(answers))}
	for idx, q := range questions {
		ic.Answers = append(ic.Answers, QuestionAnswer{Question: q, Answer: answers[idx]})
	}
	return ic, nil
}

type GenerationRequest struct {
	LazyPrompt   LazyPrompt          `json:"lazy_prompt"`
	TargetModels []TargetModel       `json:"target_models"`
	Tier         UserTier            `json:"tier"`
	Improvement  *ImprovementContext `json:"improvement,omitempty"`
}

// ArtifactView сгенерированный текст с признаком источника
type ArtifactView struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
}

// GenerationSession всё, что возвращается пользователю после одного прогона конвейера
type GenerationSession struct {
	HistoryID         string                       `json:"history_id,omitempty"`
	LazyPrompt        LazyPrompt                   `json:"lazy_prompt"`
	TargetModels      []TargetModel                `json:"target_models"`
	Tier              UserTier                     `json:"tier"`
	Preprocess        PreprocessResult             `json:"preprocess"`
	Artifacts         map[TargetModel]ArtifactView `json:"artifacts"`
	Questions         []string                     `json:"questions"`
	QuestionsFallback bool                         `json:"questions_fallback"`
	Usage             UsageStatus                  `json:"usage"`
	CreatedAt         time.Time                    `json:"created_at"`
}

// Texts артефакты без признака источника
func (s GenerationSession) Texts() map[TargetModel]string {
	out := make(map[TargetModel]string, len(s.Artifacts))
	for m, a := range s.Artifacts {
		out[m] = a.Text
	}
	return out
}
