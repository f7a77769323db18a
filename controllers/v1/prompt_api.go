package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"promptsync-backend/controllers"
	"promptsync-backend/lib/analyze"
	"promptsync-backend/lib/superprompt"
	"promptsync-backend/lib/usage"
	authutils "promptsync-backend/lib/utils/auth-utils"
	"promptsync-backend/middleware"
	"promptsync-backend/models"
	apimodels "promptsync-backend/models/api"
	promptapimodels "promptsync-backend/models/api/prompt"
)

type promptApiController struct {
	controllers.BaseAPIController
	orchestrator superprompt.Provider
	governor     usage.Provider
	analyzer     analyze.Provider
}

func InitPromptApiRouters(app *fiber.App, orchestrator superprompt.Provider, governor usage.Provider, analyzer analyze.Provider) {
	controller := promptApiController{
		orchestrator: orchestrator,
		governor:     governor,
		analyzer:     analyzer,
	}
	app.Route("prompt", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Post("generate", controller.generate)
		router.Post("improve", controller.improve)
		router.Post("questions", controller.questions)
		router.Post("analyze", controller.analyze)
	})
}

// @Summary Сгенерировать супер-промты
// @Tags Супер-промты
// @Description Преобразует ленивый промт в супер-промт для каждой выбранной модели. Расходует один запрос дневного лимита.
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		promptapimodels.GenerateRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=models.GenerationSession}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 429 {object} apimodels.Response{data=models.UsageStatus}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/prompt/generate [post]
func (c *promptApiController) generate(ctx *fiber.Ctx) error {
	var payload promptapimodels.GenerateRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	session, err := c.orchestrator.Generate(ctx.UserContext(), authutils.GetUserID(ctx), payload.ToDomain())
	if err != nil {
		return c.sendGenerationError(ctx, session, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(session))
}

// @Summary Уточнить супер-промты
// @Tags Супер-промты
// @Description Повторная генерация с ответами на уточняющие вопросы. Расходует один запрос дневного лимита.
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		promptapimodels.ImproveRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=models.GenerationSession}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 429 {object} apimodels.Response{data=models.UsageStatus}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/prompt/improve [post]
func (c *promptApiController) improve(ctx *fiber.Ctx) error {
	var payload promptapimodels.ImproveRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	session, err := c.orchestrator.Improve(ctx.UserContext(), authutils.GetUserID(ctx), payload.ToDomain(), payload.Questions, payload.Answers)
	if err != nil {
		return c.sendGenerationError(ctx, session, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(session))
}

// @Summary Сгенерировать уточняющие вопросы
// @Tags Супер-промты
// @Description Три уточняющих вопроса по готовому супер-промту. Лимит не расходуется.
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		promptapimodels.QuestionsRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=promptapimodels.QuestionsView}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/prompt/questions [post]
func (c *promptApiController) questions(ctx *fiber.Ctx) error {
	var payload promptapimodels.QuestionsRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	tier, err := c.callerTier(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "ошибка получения тарифа пользователя")
	}
	lazy := models.LazyPrompt{Text: payload.LazyPrompt, Purpose: payload.Purpose}
	res := c.orchestrator.GenerateQuestions(ctx.UserContext(), lazy, payload.Artifact, tier)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(promptapimodels.QuestionsView{
		Questions: res.Value.Questions,
		Fallback:  res.IsFallback(),
	}))
}

// @Summary Анализ промта
// @Tags Супер-промты
// @Description Сложность, подходящие модели, оценка токенов и рекомендации. Лимит не расходуется.
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		promptapimodels.AnalyzeRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=promptapimodels.AnalyzeView}
// @Failure 400 {object} apimodels.Response
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/prompt/analyze [post]
func (c *promptApiController) analyze(ctx *fiber.Ctx) error {
	var payload promptapimodels.AnalyzeRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	tier, err := c.callerTier(ctx)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "ошибка получения тарифа пользователя")
	}
	res := c.analyzer.Analyze(ctx.UserContext(), payload.Prompt, tier)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(promptapimodels.AnalyzeView{
		PromptAnalysis: res.Value,
		Fallback:       res.IsFallback(),
	}))
}

func (c *promptApiController) callerTier(ctx *fiber.Ctx) (models.UserTier, error) {
	status, err := c.governor.Status(ctx.UserContext(), authutils.GetUserID(ctx))
	if err != nil {
		return "", err
	}
	return status.Tier, nil
}

func (c *promptApiController) sendGenerationError(ctx *fiber.Ctx, session models.GenerationSession, err error) error {
	if errors.Is(err, usage.ErrQuotaExceeded) {
		return ctx.Status(fiber.StatusTooManyRequests).JSON(apimodels.Response{
			Status:  "fail",
			Message: err.Error(),
			Data:    session.Usage,
		})
	}
	return c.SendError(ctx, c.GetLogger(ctx), err, "ошибка генерации супер-промтов")
}
