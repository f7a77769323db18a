package fiberlog

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

func getLogrusFields(ftm map[string]FuncTag, c *fiber.Ctx, d *data, skipBody bool) log.Fields {
	f := make(log.Fields, len(ftm))
	for k, ft := range ftm {
		if skipBody && isBodyTag(k) {
			continue
		}
		value := ft(c, d)
		if strValue, ok := value.(string); ok {
			if strValue != "" {
				f[k] = strValue
			}
			continue
		}
		f[k] = value
	}
	return f
}

// New middleware журналирования запросов. Каждому запросу назначается request id,
// он же возвращается клиенту в заголовке X-Request-ID.
func New(config ...Config) fiber.Handler {
	cfg := ConfigDefault
	if len(config) > 0 {
		cfg = config[0]
	}
	pid := os.Getpid()
	ftm := getFuncTagMap(cfg)
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodOptions {
			return c.Next()
		}
		requestID := c.Get(fiber.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Locals(RequestID, requestID)
		c.Set(fiber.HeaderXRequestID, requestID)

		d := &data{pid: pid, start: time.Now()}
		err := c.Next()
		if err != nil {
			// статус ответа выставляется обработчиком ошибок приложения
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		d.end = time.Now()

		skipBody := cfg.SkipBody != nil && cfg.SkipBody(c)
		fields := getLogrusFields(ftm, c, d, skipBody)
		var entry *log.Entry
		if cfg.Logger == nil {
			entry = log.WithFields(fields)
		} else {
			entry = cfg.Logger.WithFields(fields)
		}
		if c.Response().StatusCode() >= fiber.StatusInternalServerError {
			entry.Error(message)
		} else if c.Response().StatusCode() >= fiber.StatusMultipleChoices {
			entry.Warn(message)
		} else {
			entry.Info(message)
		}
		return nil
	}
}

const message = "запрос api"
