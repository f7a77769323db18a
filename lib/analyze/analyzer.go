package analyze

import (
	"context"
	"math"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"promptsync-backend/lib/ai/backend"
	"promptsync-backend/lib/preprocess"
	"promptsync-backend/lib/utils/fallback"
	"promptsync-backend/lib/utils/helpers"
	"promptsync-backend/models"
)

var ErrAnalysisUnavailable = errors.New("анализ промта через ИИ недоступен")

const (
	tokensPerWord       = 1.3
	heuristicConfidence = 0.8
	backendConfidence   = 0.95
	shortPromptWords    = 10
)

var (
	formatPattern   = regexp.MustCompile(`(?i)\b(format|list|table|bullet\w*|json|markdown|outline|steps?|paragraphs?|words?|pages?)\b`)
	examplePattern  = regexp.MustCompile(`(?i)\b(examples?|instance|e\.g\.|for example|sample)\b`)
	audiencePattern = regexp.MustCompile(`(?i)\b(audience|readers?|beginners?|experts?|customers?|students?|for (kids|children|developers|managers))\b`)
)

type Provider interface {
	// Analyze всегда возвращает результат, при недоступности бэкенда используется эвристика
	Analyze(ctx context.Context, prompt string, tier models.UserTier) fallback.Result[models.PromptAnalysis]
}

func NewHandler(ai backend.Provider) Provider {
	return impl{ai: ai}
}

type impl struct {
	ai backend.Provider
}

func (i impl) Analyze(ctx context.Context, prompt string, tier models.UserTier) fallback.Result[models.PromptAnalysis] {
	local := Heuristic(prompt)
	if i.ai == nil {
		return fallback.Fallback(local, errors.Wrap(ErrAnalysisUnavailable, "бэкенд не настроен"))
	}
	answer, err := i.ai.Analyze(ctx, prompt, tier.Variant())
	if err != nil {
		log.WithError(err).WithField("tier", tier).Warn("анализ промта выполнен эвристикой")
		return fallback.Fallback(local, errors.Wrap(ErrAnalysisUnavailable, err.Error()))
	}
	result := models.PromptAnalysis{
		Complexity:      answer.Complexity,
		SuggestedModels: catalogModels(answer.SuggestedModels),
		EstimatedTokens: answer.EstimatedTokens,
		Confidence:      backendConfidence,
		Sentiment:       answer.Sentiment,
		Suggestions:     answer.Suggestions,
	}
	if len(result.SuggestedModels) == 0 {
		result.SuggestedModels = local.SuggestedModels
	}
	if result.EstimatedTokens <= 0 {
		result.EstimatedTokens = local.EstimatedTokens
	}
	if result.Sentiment == "" {
		result.Sentiment = "neutral"
	}
	if len(result.Suggestions) == 0 {
		result.Suggestions = local.Suggestions
	}
	return fallback.Ok(result)
}

// Heuristic оценка без сетевых вызовов
func Heuristic(prompt string) models.PromptAnalysis {
	words := helpers.Words(prompt)
	complexity := preprocess.DetectComplexity(prompt, words)
	return models.PromptAnalysis{
		Complexity:      complexity,
		SuggestedModels: ModelsFor(complexity),
		EstimatedTokens: EstimateTokens(len(words)),
		Confidence:      heuristicConfidence,
		Sentiment:       "neutral",
		Suggestions:     Suggestions(prompt),
	}
}

func ModelsFor(complexity models.Complexity) []models.TargetModel {
	switch complexity {
	case models.ComplexityComplex:
		return []models.TargetModel{models.TargetClaude, models.TargetChatGPT}
	case models.ComplexityModerate:
		return []models.TargetModel{models.TargetChatGPT, models.TargetGemini}
	default:
		return models.TargetModelCatalog()
	}
}

func EstimateTokens(wordCount int) int {
	return int(math.Ceil(float64(wordCount) * tokensPerWord))
}

// Suggestions локальные правила улучшения промта
func Suggestions(prompt string) []string {
	words := helpers.Words(prompt)
	result := []string{}
	if len(words) < shortPromptWords {
		result = append(result, "Add more context: who the result is for and what it will be used for")
	}
	if !formatPattern.MatchString(prompt) {
		result = append(result, "Specify the output format, for example a list, a table or a word count")
	}
	complexity := preprocess.DetectComplexity(prompt, words)
	if complexity == models.ComplexityComplex && !examplePattern.MatchString(prompt) {
		result = append(result, "Add an example of the expected result")
	}
	if preprocess.DetectDomain(words) == models.DomainContent && !audiencePattern.MatchString(prompt) {
		result = append(result, "State the target audience")
	}
	return result
}

func catalogModels(names []string) []models.TargetModel {
	out := []models.TargetModel{}
	seen := map[models.TargetModel]struct{}{}
	for _, name := range names {
		m := models.TargetModel(strings.ToLower(strings.TrimSpace(name)))
		if !m.IsValid() {
			continue
		}
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}
