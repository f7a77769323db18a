package enhance

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"promptsync-backend/lib/ai/backend"
	"promptsync-backend/lib/utils/fallback"
	"promptsync-backend/models"
)

var ErrEnhancementUnavailable = errors.New("улучшение промта через ИИ недоступно")

type Provider interface {
	// Enhance всегда возвращает непустой текст
	Enhance(ctx context.Context, pre models.PreprocessResult, purpose models.Purpose, target models.TargetModel,
		tier models.UserTier, improvement *models.ImprovementContext) fallback.Result[string]
}

func NewHandler(ai backend.Provider) Provider {
	return &impl{ai: ai}
}

type impl struct {
	ai backend.Provider
}

func (i impl) Enhance(ctx context.Context, pre models.PreprocessResult, purpose models.Purpose, target models.TargetModel,
	tier models.UserTier, improvement *models.ImprovementContext) fallback.Result[string] {
	logger := log.
		WithField("target_model", target).
		WithField("purpose", purpose).
		WithField("tier", tier)

	res := i.tryBackend(ctx, pre, purpose, target, tier, improvement)
	if res.err == nil {
		return fallback.Ok(res.text)
	}
	logger.WithError(res.err).Warn("супер-промт собран по шаблону")
	return fallback.Fallback(Synthesize(pre), errors.Wrap(ErrEnhancementUnavailable, res.err.Error()))
}

type attempt struct {
	text string
	err  error
}

func (i impl) tryBackend(ctx context.Context, pre models.PreprocessResult, purpose models.Purpose, target models.TargetModel,
	tier models.UserTier, improvement *models.ImprovementContext) attempt {
	if i.ai == nil {
		return attempt{err: errors.New("бэкенд не настроен")}
	}
	instruction, err := BuildInstruction(pre, purpose, target, improvement)
	if err != nil {
		return attempt{err: err}
	}
	text, err := i.ai.Enhance(ctx, instruction, tier.Variant())
	if err != nil {
		return attempt{err: err}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return attempt{err: errors.New("бэкенд вернул пустой текст")}
	}
	return attempt{text: text}
}
