package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"promptsync-backend/controllers"
	"promptsync-backend/lib/usage"
	authutils "promptsync-backend/lib/utils/auth-utils"
	"promptsync-backend/middleware"
	apimodels "promptsync-backend/models/api"
)

type usageApiController struct {
	controllers.BaseAPIController
	governor usage.Provider
}

func InitUsageApiRouters(app *fiber.App, governor usage.Provider) {
	controller := usageApiController{governor: governor}
	app.Route("usage", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Get("", controller.status)
	})
}

// @Summary Использование дневного лимита
// @Tags Лимиты
// @Description Тариф, количество запросов за сегодня, лимит и остаток
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=models.UsageStatus}
// @Failure 401 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/usage [get]
func (c *usageApiController) status(ctx *fiber.Ctx) error {
	status, err := c.governor.Status(ctx.UserContext(), authutils.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "ошибка получения статуса использования")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(status))
}
