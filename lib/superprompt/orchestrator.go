package superprompt

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"promptsync-backend/lib/enhance"
	"promptsync-backend/lib/history"
	"promptsync-backend/lib/preprocess"
	"promptsync-backend/lib/questions"
	"promptsync-backend/lib/usage"
	"promptsync-backend/lib/utils/fallback"
	"promptsync-backend/models"
)

// MaxPromptLength ограничение длины ленивого промта в символах
const MaxPromptLength = 10000

var (
	ErrUnauthenticated = errors.New("требуется авторизация")
	ErrInvalidRequest  = errors.New("некорректный запрос")
)

type Provider interface {
	// GenerateSuperPrompts возвращает ровно одну запись на каждую запрошенную модель.
	// Ошибка возможна при некорректном наборе моделей и при отмене контекста.
	GenerateSuperPrompts(ctx context.Context, lazy models.LazyPrompt, targets []models.TargetModel, tier models.UserTier,
		improvement *models.ImprovementContext) (map[models.TargetModel]fallback.Result[string], error)
	GenerateQuestions(ctx context.Context, lazy models.LazyPrompt, artifact string, tier models.UserTier) fallback.Result[models.QuestionSet]
	// Generate полный прогон: авторизация, квота, генерация, вопросы, история
	Generate(ctx context.Context, callerID string, req models.GenerationRequest) (models.GenerationSession, error)
	// Improve раунд уточнения по ответам на три вопроса предыдущего раунда
	Improve(ctx context.Context, callerID string, req models.GenerationRequest, questionList, answers []string) (models.GenerationSession, error)
}

func NewHandler(preprocessor preprocess.Provider, enhancer enhance.Provider, questionLoop questions.Provider,
	governor usage.Provider, historyHandler history.Provider) Provider {
	return &impl{
		preprocessor: preprocessor,
		enhancer:     enhancer,
		questions:    questionLoop,
		governor:     governor,
		history:      historyHandler,
		now:          time.Now,
	}
}

type impl struct {
	preprocessor preprocess.Provider
	enhancer     enhance.Provider
	questions    questions.Provider
	governor     usage.Provider
	history      history.Provider
	now          func() time.Time
}

func (i impl) GenerateSuperPrompts(ctx context.Context, lazy models.LazyPrompt, targets []models.TargetModel, tier models.UserTier,
	improvement *models.ImprovementContext) (map[models.TargetModel]fallback.Result[string], error) {
	if err := models.ValidateTargetModels(targets); err != nil {
		return nil, errors.Wrap(ErrInvalidRequest, err.Error())
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pre := i.preprocessor.Preprocess(ctx, lazy.Text, tier)
	return i.fanOut(ctx, pre.Value, lazy.Purpose, targets, tier, improvement)
}

// fanOut одна задача на целевую модель, каждая пишет только в свой слот
func (i impl) fanOut(ctx context.Context, pre models.PreprocessResult, purpose models.Purpose, targets []models.TargetModel,
	tier models.UserTier, improvement *models.ImprovementContext) (map[models.TargetModel]fallback.Result[string], error) {
	slots := make([]fallback.Result[string], len(targets))
	g, gctx := errgroup.WithContext(ctx)
	for idx, target := range targets {
		g.Go(func() error {
			slots[idx] = i.enhancer.Enhance(gctx, pre, purpose, target, tier, improvement)
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	result := make(map[models.TargetModel]fallback.Result[string], len(targets))
	for idx, target := range targets {
		result[target] = slots[idx]
	}
	return result, nil
}

func (i impl) GenerateQuestions(ctx context.Context, lazy models.LazyPrompt, artifact string, tier models.UserTier) fallback.Result[models.QuestionSet] {
	return i.questions.Generate(ctx, lazy.Text, artifact, tier)
}

func (i impl) Generate(ctx context.Context, callerID string, req models.GenerationRequest) (models.GenerationSession, error) {
	if callerID == "" {
		return models.GenerationSession{}, ErrUnauthenticated
	}
	if err := validate(req); err != nil {
		return models.GenerationSession{}, err
	}
	return i.run(ctx, callerID, req)
}

func (i impl) Improve(ctx context.Context, callerID string, req models.GenerationRequest, questionList, answers []string) (models.GenerationSession, error) {
	if callerID == "" {
		return models.GenerationSession{}, ErrUnauthenticated
	}
	if err := validate(req); err != nil {
		return models.GenerationSession{}, err
	}
	improvement, err := models.NewImprovementContext(questionList, answers)
	if err != nil {
		return models.GenerationSession{}, err
	}
	req.Improvement = improvement
	return i.run(ctx, callerID, req)
}

func (i impl) run(ctx context.Context, callerID string, req models.GenerationRequest) (models.GenerationSession, error) {
	logger := log.
		WithField("user_id", callerID).
		WithField("purpose", req.LazyPrompt.Purpose).
		WithField("target_models", models.TargetModelsToStrings(req.TargetModels)).
		WithField("refine", !req.Improvement.IsEmpty())

	status, err := i.governor.CheckAndReserve(ctx, callerID)
	if err != nil {
		if errors.Is(err, usage.ErrQuotaExceeded) {
			logger.Info("дневной лимит исчерпан")
		}
		return models.GenerationSession{Usage: status}, err
	}
	// тариф берётся из профиля, а не из запроса
	tier := status.Tier
	startTime := time.Now()

	pre := i.preprocessor.Preprocess(ctx, req.LazyPrompt.Text, tier)
	if pre.IsFallback() {
		logger.WithError(pre.Reason).Debug("классификация выполнена эвристикой")
	}
	artifacts, err := i.fanOut(ctx, pre.Value, req.LazyPrompt.Purpose, req.TargetModels, tier, req.Improvement)
	if err != nil {
		logger.WithError(err).Warn("генерация прервана")
		return models.GenerationSession{}, err
	}
	first := req.TargetModels[0]
	questionSet := i.questions.Generate(ctx, req.LazyPrompt.Text, artifacts[first].Value, tier)
	if err = ctx.Err(); err != nil {
		return models.GenerationSession{}, err
	}

	session := models.GenerationSession{
		LazyPrompt:        req.LazyPrompt,
		TargetModels:      append([]models.TargetModel{}, req.TargetModels...),
		Tier:              tier,
		Preprocess:        pre.Value,
		Artifacts:         make(map[models.TargetModel]models.ArtifactView, len(artifacts)),
		Questions:         questionSet.Value.Questions,
		QuestionsFallback: questionSet.IsFallback(),
		Usage:             status,
		CreatedAt:         i.now().UTC(),
	}
	fallbackCount := 0
	for target, res := range artifacts {
		session.Artifacts[target] = models.ArtifactView{Text: res.Value, Fallback: res.IsFallback()}
		if res.IsFallback() {
			fallbackCount++
		}
	}

	id, err := i.history.Save(ctx, callerID, session, req.Improvement)
	if err != nil {
		logger.WithError(err).Error("PersistenceFailure: сессия не сохранена в историю")
	} else {
		session.HistoryID = id
	}
	logger.
		WithField("fallback_count", fallbackCount).
		WithField("duration_sec", time.Since(startTime).Seconds()).
		Info("супер-промты сгенерированы")
	return session, nil
}

func validate(req models.GenerationRequest) error {
	text := strings.TrimSpace(req.LazyPrompt.Text)
	if text == "" {
		return errors.Wrap(ErrInvalidRequest, "текст промта не может быть пустым")
	}
	if utf8.RuneCountInString(text) > MaxPromptLength {
		return errors.Wrapf(ErrInvalidRequest, "текст промта длиннее %d символов", MaxPromptLength)
	}
	if err := req.LazyPrompt.Purpose.Validate(); err != nil {
		return errors.Wrap(ErrInvalidRequest, err.Error())
	}
	if err := models.ValidateTargetModels(req.TargetModels); err != nil {
		return errors.Wrap(ErrInvalidRequest, err.Error())
	}
	return nil
}
