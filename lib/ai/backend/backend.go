package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	ailogstore "promptsync-backend/lib/ai/ai-log-store"
	llmclient "promptsync-backend/lib/ai/llm-client"
	"promptsync-backend/models"
	dbmodels "promptsync-backend/models/db"
)

// Provider генеративный бэкенд. Ошибки возвращаются как обычные значения, решение о замене принимает вызывающий.
type Provider interface {
	Classify(ctx context.Context, prompt string, variant models.BackendVariant) (models.PreprocessResult, error)
	Enhance(ctx context.Context, instruction string, variant models.BackendVariant) (string, error)
	AskQuestions(ctx context.Context, lazyPrompt, artifact, systemInstruction string, variant models.BackendVariant) ([]string, error)
	Analyze(ctx context.Context, prompt string, variant models.BackendVariant) (AnalyzeAnswer, error)
}

type Timeouts struct {
	Classify  time.Duration
	Enhance   time.Duration
	Questions time.Duration
}

func NewHandler(client llmclient.Provider, logStore ailogstore.Provider, timeouts Timeouts, limiter *rate.Limiter) Provider {
	return &impl{
		client:   client,
		logStore: logStore,
		timeouts: timeouts,
		limiter:  limiter,
	}
}

type impl struct {
	client   llmclient.Provider
	logStore ailogstore.Provider
	timeouts Timeouts
	limiter  *rate.Limiter
}

func (i impl) getLogger(reqType dbmodels.AiReqestType, variant models.BackendVariant) *log.Entry {
	return log.
		WithField("ai", i.client.Name()).
		WithField("model", i.client.ModelName(variant)).
		WithField("request_type", reqType)
}

func (i impl) Classify(ctx context.Context, prompt string, variant models.BackendVariant) (models.PreprocessResult, error) {
	answer, err := i.call(ctx, dbmodels.AiClassifyType, i.timeouts.Classify, llmclient.Request{
		User:        fmt.Sprintf(classifyPattern, prompt),
		Variant:     variant,
		Temperature: 0.3,
		MaxTokens:   1024,
		JSONAnswer:  true,
	})
	if err != nil {
		return models.PreprocessResult{}, err
	}
	return ParseClassifyAnswer(answer)
}

func (i impl) Enhance(ctx context.Context, instruction string, variant models.BackendVariant) (string, error) {
	temperature := float32(0.7)
	maxTokens := 2048
	if variant == models.VariantAdvanced {
		maxTokens = 4096
	}
	answer, err := i.call(ctx, dbmodels.AiEnhanceType, i.timeouts.Enhance, llmclient.Request{
		User:        instruction,
		Variant:     variant,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}
	return ExtractAnswer(answer), nil
}

func (i impl) AskQuestions(ctx context.Context, lazyPrompt, artifact, systemInstruction string, variant models.BackendVariant) ([]string, error) {
	answer, err := i.call(ctx, dbmodels.AiQuestionsType, i.timeouts.Questions, llmclient.Request{
		System:      systemInstruction,
		User:        fmt.Sprintf(questionsPattern, lazyPrompt, artifact),
		Variant:     variant,
		Temperature: 0.7,
		MaxTokens:   512,
		JSONAnswer:  true,
	})
	if err != nil {
		return nil, err
	}
	return ParseQuestionsAnswer(answer)
}

func (i impl) Analyze(ctx context.Context, prompt string, variant models.BackendVariant) (AnalyzeAnswer, error) {
	answer, err := i.call(ctx, dbmodels.AiAnalyzeType, i.timeouts.Classify, llmclient.Request{
		User:        fmt.Sprintf(analyzePattern, prompt),
		Variant:     variant,
		Temperature: 0.3,
		MaxTokens:   512,
		JSONAnswer:  true,
	})
	if err != nil {
		return AnalyzeAnswer{}, err
	}
	return ParseAnalyzeAnswer(answer)
}

func (i impl) call(ctx context.Context, reqType dbmodels.AiReqestType, timeout time.Duration, req llmclient.Request) (string, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	logger := i.getLogger(reqType, req.Variant)
	if i.limiter != nil {
		if err := i.limiter.Wait(ctx); err != nil {
			return "", errors.Wrap(err, "не дождались очереди запросов к ИИ")
		}
	}

	now := time.Now()
	answer, err := i.client.Generate(ctx, req)
	duration := time.Since(now).Seconds()
	logger = logger.WithField("answer_duration_sec", duration)

	rec := dbmodels.AiLog{
		SysPromt:    req.System,
		UserPromt:   req.User,
		Answer:      answer,
		DurationSec: duration,
		ReqestType:  reqType,
		AiName:      i.client.Name(),
		ModelName:   i.client.ModelName(req.Variant),
	}
	if err != nil {
		rec.Error = err.Error()
		logger.WithError(err).Warn("Ошибка запроса к ИИ")
	} else {
		logger.Info("Получен ответ ИИ")
	}
	i.saveLog(rec)
	return answer, err
}

func (i impl) saveLog(rec dbmodels.AiLog) {
	if i.logStore == nil {
		return
	}
	if _, err := i.logStore.Save(rec); err != nil {
		log.WithError(err).
			WithField("request_type", rec.ReqestType).
			Error("ошибка сохранения лога запроса к ИИ")
	}
}
