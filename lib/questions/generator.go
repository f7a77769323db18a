package questions

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"promptsync-backend/lib/ai/backend"
	"promptsync-backend/lib/utils/fallback"
	"promptsync-backend/models"
)

var ErrQuestionGenerationUnavailable = errors.New("генерация уточняющих вопросов недоступна")

// SystemInstruction фиксированная системная инструкция для запроса вопросов
const SystemInstruction = "Do not make any changes until you have 95% confidence that you know what to build. " +
	"Ask me follow-up questions until you have that confidence. " +
	"Ask exactly three open, domain-relevant questions that the prompt does not already answer, as a list."

var defaultQuestions = []string{
	"What specific context or constraints should be added to make this prompt more targeted?",
	"What tone, style, or format would work best for your intended use case?",
	"What additional details or examples would help achieve better results?",
}

// DefaultQuestions нейтральный набор из трёх вопросов
func DefaultQuestions() models.QuestionSet {
	out := make([]string, len(defaultQuestions))
	copy(out, defaultQuestions)
	return models.QuestionSet{Questions: out}
}

type Provider interface {
	// Generate всегда возвращает ровно models.QuestionSetSize вопросов
	Generate(ctx context.Context, lazyPrompt, artifact string, tier models.UserTier) fallback.Result[models.QuestionSet]
}

func NewHandler(ai backend.Provider) Provider {
	return &impl{ai: ai}
}

type impl struct {
	ai backend.Provider
}

func (i impl) Generate(ctx context.Context, lazyPrompt, artifact string, tier models.UserTier) fallback.Result[models.QuestionSet] {
	if i.ai == nil {
		return fallback.Fallback(DefaultQuestions(), ErrQuestionGenerationUnavailable)
	}
	list, err := i.ai.AskQuestions(ctx, lazyPrompt, artifact, SystemInstruction, tier.Variant())
	if err == nil {
		list, err = normalize(list)
	}
	if err != nil {
		log.WithError(err).
			WithField("tier", tier).
			Warn("используются вопросы по умолчанию")
		return fallback.Fallback(DefaultQuestions(), errors.Wrap(ErrQuestionGenerationUnavailable, err.Error()))
	}
	return fallback.Ok(models.QuestionSet{Questions: list})
}

// normalize оставляет первые три непустых неповторяющихся вопроса, меньше трёх считается ошибкой
func normalize(list []string) ([]string, error) {
	out := make([]string, 0, models.QuestionSetSize)
	seen := map[string]struct{}{}
	for _, q := range list {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		key := strings.ToLower(q)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, q)
		if len(out) == models.QuestionSetSize {
			return out, nil
		}
	}
	return nil, errors.Errorf("получено %d вопросов вместо %d", len(out), models.QuestionSetSize)
}
