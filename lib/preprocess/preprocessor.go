package preprocess

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"promptsync-backend/lib/ai/backend"
	"promptsync-backend/lib/utils/fallback"
	"promptsync-backend/models"
)

var ErrClassificationUnavailable = errors.New("удалённая классификация недоступна")

type Provider interface {
	// Preprocess никогда не возвращает ошибку, при отказе бэкенда отдаёт эвристику
	Preprocess(ctx context.Context, prompt string, tier models.UserTier) fallback.Result[models.PreprocessResult]
}

func NewHandler(ai backend.Provider) Provider {
	return &impl{ai: ai}
}

type impl struct {
	ai backend.Provider
}

func (i impl) Preprocess(ctx context.Context, prompt string, tier models.UserTier) fallback.Result[models.PreprocessResult] {
	logger := log.WithField("tier", tier)
	if i.ai == nil {
		return fallback.Fallback(Heuristic(prompt), ErrClassificationUnavailable)
	}
	remote, err := i.ai.Classify(ctx, prompt, tier.Variant())
	if err != nil {
		logger.WithError(err).Warn("классификация промта недоступна, используется эвристика")
		return fallback.Fallback(Heuristic(prompt), errors.Wrap(ErrClassificationUnavailable, err.Error()))
	}
	return fallback.Ok(normalize(remote, prompt))
}

// normalize приводит ответ бэкенда к инвариантам локальной классификации
func normalize(res models.PreprocessResult, prompt string) models.PreprocessResult {
	if !res.Domain.IsKnown() && res.Domain != models.DomainGeneral {
		res.Domain = models.DomainGeneral
	}
	if res.DomainLabel == "" {
		res.DomainLabel = string(res.Domain)
	}
	if strings.TrimSpace(res.Intent) == "" {
		res.Intent = string(DetectIntent(nil))
	}
	res.SuggestedSections = UnionSections(BaselineSections, res.SuggestedSections, SectionsFor(res.Domain))
	if res.SectionRationale == nil {
		res.SectionRationale = map[string]string{}
	}
	for _, s := range res.SuggestedSections {
		if _, ok := res.SectionRationale[s]; ok {
			continue
		}
		if r, ok := RationaleFor(s); ok {
			res.SectionRationale[s] = r
		}
	}
	if res.GrammarCorrections == nil {
		res.GrammarCorrections = []models.GrammarCorrection{}
	}
	if res.CorrectedPrompt == "" {
		res.CorrectedPrompt = NormalizeGrammar(prompt)
	}
	return res
}
