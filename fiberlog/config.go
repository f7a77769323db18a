package fiberlog

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// Config настройки middleware журналирования запросов
type Config struct {
	// Logger если nil, используется глобальный логгер logrus
	Logger *logrus.Logger
	// Tags поля, которые попадут в запись журнала
	Tags []string
	// MaxBodyLen тела длиннее обрезаются, 0 означает без ограничения
	MaxBodyLen int
	// SkipBody если вернул true, тела запроса и ответа не пишутся в журнал
	SkipBody func(c *fiber.Ctx) bool
}

var ConfigDefault = Config{
	Logger: nil,
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
	},
	MaxBodyLen: 4096,
}
