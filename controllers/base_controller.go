package controllers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"promptsync-backend/fiberlog"
	"promptsync-backend/lib/auth"
	filestorage "promptsync-backend/lib/file-storage"
	"promptsync-backend/lib/history"
	"promptsync-backend/lib/superprompt"
	"promptsync-backend/lib/usage"
	usersstore "promptsync-backend/lib/users/store"
	authutils "promptsync-backend/lib/utils/auth-utils"
	"promptsync-backend/lib/waitlist"
	"promptsync-backend/models"
	apimodels "promptsync-backend/models/api"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	logger := log.
		WithField("path", ctx.Path()).
		WithField("user_id", authutils.GetUserID(ctx))
	if requestID, ok := ctx.Locals(fiberlog.RequestID).(string); ok {
		logger = logger.WithField("request_id", requestID)
	}
	return logger
}

// errorStatuses ошибки, текст которых можно отдать клиенту как есть
var errorStatuses = []struct {
	err    error
	status int
}{
	{usage.ErrQuotaExceeded, fiber.StatusTooManyRequests},
	{usage.ErrReserveConflict, fiber.StatusServiceUnavailable},
	{usage.ErrUnknownCaller, fiber.StatusUnauthorized},
	{superprompt.ErrUnauthenticated, fiber.StatusUnauthorized},
	{superprompt.ErrInvalidRequest, fiber.StatusBadRequest},
	{models.ErrAnswersMismatch, fiber.StatusBadRequest},
	{history.ErrNotFound, fiber.StatusNotFound},
	{filestorage.ErrStorageUnavailable, fiber.StatusServiceUnavailable},
	{usersstore.ErrEmailTaken, fiber.StatusConflict},
	{auth.ErrInvalidCredentials, fiber.StatusUnauthorized},
	{auth.ErrUserNotFound, fiber.StatusUnauthorized},
	{waitlist.ErrInvalidEmail, fiber.StatusBadRequest},
}

// ErrorStatus http статус для ошибки, 500 если ошибка не известна
func ErrorStatus(err error) (int, bool) {
	for _, item := range errorStatuses {
		if errors.Is(err, item.err) {
			return item.status, true
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fiber.StatusRequestTimeout, true
	}
	return fiber.StatusInternalServerError, false
}

// SendError отвечает статусом по типу ошибки. Для неизвестных ошибок клиенту уходит msg, а причина пишется в журнал.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, msg string) error {
	status, known := ErrorStatus(err)
	if !known {
		logger.WithError(err).Error(msg)
		return ctx.Status(status).JSON(apimodels.NewError(msg))
	}
	return ctx.Status(status).JSON(apimodels.NewError(err.Error()))
}
