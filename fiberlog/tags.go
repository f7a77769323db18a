package fiberlog

import (
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
)

const (
	TagPID      = "pid"
	TagLatency  = "latency"
	TagStatus   = "status"
	TagMethod   = "method"
	TagPath     = "path"
	TagURL      = "url"
	TagIP       = "ip"
	TagUA       = "user_agent"
	TagBody     = "body"
	TagResBody  = "res_body"
	TagBytesIn  = "bytes_in"
	TagBytesOut = "bytes_out"
	RequestID   = "request_id"
)

// data значения одного запроса
type data struct {
	pid   int
	start time.Time
	end   time.Time
}

// FuncTag возвращает значение поля для записи журнала
type FuncTag func(c *fiber.Ctx, d *data) interface{}

func getFuncTagMap(cfg Config) map[string]FuncTag {
	all := map[string]FuncTag{
		TagPID: func(c *fiber.Ctx, d *data) interface{} {
			return d.pid
		},
		TagLatency: func(c *fiber.Ctx, d *data) interface{} {
			return d.end.Sub(d.start).Seconds()
		},
		TagStatus: func(c *fiber.Ctx, d *data) interface{} {
			return c.Response().StatusCode()
		},
		TagMethod: func(c *fiber.Ctx, d *data) interface{} {
			return c.Method()
		},
		TagPath: func(c *fiber.Ctx, d *data) interface{} {
			return c.Path()
		},
		TagURL: func(c *fiber.Ctx, d *data) interface{} {
			return c.OriginalURL()
		},
		TagIP: func(c *fiber.Ctx, d *data) interface{} {
			return c.IP()
		},
		TagUA: func(c *fiber.Ctx, d *data) interface{} {
			return c.Get(fiber.HeaderUserAgent)
		},
		TagBody: func(c *fiber.Ctx, d *data) interface{} {
			return truncate(string(c.Body()), cfg.MaxBodyLen)
		},
		TagResBody: func(c *fiber.Ctx, d *data) interface{} {
			return truncate(string(c.Response().Body()), cfg.MaxBodyLen)
		},
		TagBytesIn: func(c *fiber.Ctx, d *data) interface{} {
			return len(c.Request().Body())
		},
		TagBytesOut: func(c *fiber.Ctx, d *data) interface{} {
			return len(c.Response().Body())
		},
		RequestID: func(c *fiber.Ctx, d *data) interface{} {
			if id, ok := c.Locals(RequestID).(string); ok {
				return id
			}
			return c.GetRespHeader(fiber.HeaderXRequestID)
		},
	}
	out := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := all[tag]; ok {
			out[tag] = ft
		}
	}
	return out
}

// truncate обрезает по границе символа
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max] + "..."
}

func isBodyTag(tag string) bool {
	return tag == TagBody || tag == TagResBody
}
