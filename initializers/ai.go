package initializers

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"promptsync-backend/config"
	ailogstore "promptsync-backend/lib/ai/ai-log-store"
	"promptsync-backend/lib/ai/backend"
	geminiclient "promptsync-backend/lib/ai/gemini-client"
	llmclient "promptsync-backend/lib/ai/llm-client"
	ollamaclient "promptsync-backend/lib/ai/ollama-client"
	yagptclient "promptsync-backend/lib/ai/yagpt-client"
	dbmodels "promptsync-backend/models/db"
)

func newLLMClient(ctx context.Context) (llmclient.Provider, error) {
	conf := config.Conf.AI
	switch dbmodels.AiName(conf.Provider) {
	case dbmodels.AiGeminiType:
		return geminiclient.NewClient(ctx, conf.Gemini.APIKey, conf.Gemini.StandardModel, conf.Gemini.AdvancedModel)
	case dbmodels.AiYaGptType:
		return yagptclient.NewClient(conf.YandexGPT.IAMToken, conf.YandexGPT.CatalogID)
	case dbmodels.AiOllamaType:
		return ollamaclient.NewClient(conf.Ollama.OllamaURL, conf.Ollama.StandardModel, conf.Ollama.AdvancedModel)
	default:
		return nil, errors.Errorf("неизвестный провайдер ИИ: %q", conf.Provider)
	}
}

// InitAI возвращает nil, если провайдер не настроен. Конвейер тогда работает на локальных шаблонах.
func InitAI(ctx context.Context, logStore ailogstore.Provider) backend.Provider {
	client, err := newLLMClient(ctx)
	if err != nil {
		log.WithError(err).
			WithField("provider", config.Conf.AI.Provider).
			Warn("генеративный бэкенд не настроен, используются локальные шаблоны")
		return nil
	}
	conf := config.Conf.AI
	var limiter *rate.Limiter
	if conf.RateLimitPerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(conf.RateLimitPerSec), max(conf.RateLimitBurst, 1))
	}
	log.WithField("provider", conf.Provider).Info("генеративный бэкенд инициализирован")
	return backend.NewHandler(client, logStore, backend.Timeouts{
		Classify:  time.Duration(conf.ClassifyTimeoutSec) * time.Second,
		Enhance:   time.Duration(conf.EnhanceTimeoutSec) * time.Second,
		Questions: time.Duration(conf.QuestionsTimeoutSec) * time.Second,
	}, limiter)
}
