package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"promptsync-backend/controllers"
	"promptsync-backend/lib/waitlist"
	apimodels "promptsync-backend/models/api"
	waitlistapimodels "promptsync-backend/models/api/waitlist"
)

type waitlistApiController struct {
	controllers.BaseAPIController
	waitlist waitlist.Provider
}

func InitWaitlistApiRouters(app *fiber.App, handler waitlist.Provider) {
	controller := waitlistApiController{waitlist: handler}
	app.Route("waitlist", func(router fiber.Router) {
		router.Post("", controller.join)
	})
}

// @Summary Записаться в лист ожидания премиум тарифа
// @Tags Лист ожидания
// @Description Повторная запись возвращает существующую запись со статусом 200
// @Param	body				body		waitlistapimodels.JoinRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=waitlistapimodels.EntryView}
// @Success 201 {object} apimodels.Response{data=waitlistapimodels.EntryView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/waitlist [post]
func (c *waitlistApiController) join(ctx *fiber.Ctx) error {
	var payload waitlistapimodels.JoinRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	entry, created, err := c.waitlist.Join(ctx.UserContext(), payload.Email, payload.Source)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "ошибка добавления в лист ожидания")
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return ctx.Status(status).JSON(apimodels.NewResponse(waitlistapimodels.Convert(entry, created)))
}
