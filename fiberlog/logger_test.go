package fiberlog

import (
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	logger, hook := test.NewNullLogger()
	app := fiber.New()
	app.Use(New(Config{
		Logger:     logger,
		Tags:       []string{TagMethod, TagPath, TagStatus, TagBody, RequestID},
		MaxBodyLen: 5,
	}))
	app.Post("ok", func(c *fiber.Ctx) error {
		return c.SendString("done")
	})
	app.Get("fail", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "no")
	})

	t.Run("request id and fields check", func(t *testing.T) {
		hook.Reset()
		req := httptest.NewRequest(fiber.MethodPost, "/ok", strings.NewReader("0123456789"))
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		requestID := resp.Header.Get(fiber.HeaderXRequestID)
		require.NotEmpty(t, requestID)

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		require.Equal(t, logrus.InfoLevel, entry.Level)
		require.Equal(t, "/ok", entry.Data[TagPath])
		require.Equal(t, "01234...", entry.Data[TagBody])
		require.Equal(t, requestID, entry.Data[RequestID])
	})
	t.Run("incoming request id kept check", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodGet, "/fail", nil)
		req.Header.Set(fiber.HeaderXRequestID, "abc")
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusTeapot, resp.StatusCode)
		require.Equal(t, "abc", resp.Header.Get(fiber.HeaderXRequestID))
		require.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
		require.Equal(t, fiber.StatusTeapot, hook.LastEntry().Data[TagStatus])
	})
}

func TestSkipBody(t *testing.T) {
	logger, hook := test.NewNullLogger()
	skipAuth := func(c *fiber.Ctx) bool {
		return strings.HasPrefix(c.Path(), "/auth/")
	}
	app := fiber.New()
	app.Use(New(Config{
		Logger:   logger,
		Tags:     []string{TagPath, TagBody, TagResBody},
		SkipBody: skipAuth,
	}))
	app.Post("auth/login", func(c *fiber.Ctx) error {
		return c.SendString(`{"token":"issued-jwt"}`)
	})
	app.Post("notes", func(c *fiber.Ctx) error {
		return c.SendString("saved")
	})

	t.Run("credentials not logged check", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodPost, "/auth/login", strings.NewReader(`{"password":"S3cretPassw0rd"}`))
		_, err := app.Test(req)
		require.NoError(t, err)
		entry := hook.LastEntry()
		require.Equal(t, "/auth/login", entry.Data[TagPath])
		require.NotContains(t, entry.Data, TagBody)
		require.NotContains(t, entry.Data, TagResBody)
		line, err := entry.String()
		require.NoError(t, err)
		require.NotContains(t, line, "S3cretPassw0rd")
		require.NotContains(t, line, "issued-jwt")
	})
	t.Run("other bodies logged check", func(t *testing.T) {
		req := httptest.NewRequest(fiber.MethodPost, "/notes", strings.NewReader("text"))
		_, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, "text", hook.LastEntry().Data[TagBody])
		require.Equal(t, "saved", hook.LastEntry().Data[TagResBody])
	})
}

func TestTruncate(t *testing.T) {
	t.Run("rune boundary check", func(t *testing.T) {
		// каждая кириллическая буква занимает два байта
		require.Equal(t, "пр...", truncate("привет", 5))
		require.Equal(t, "при...", truncate("привет", 6))
		require.Equal(t, "a...", truncate("a🎯b", 3))
		require.True(t, utf8.ValidString(truncate("🎯🎯🎯", 7)))
	})
	t.Run("short value check", func(t *testing.T) {
		require.Equal(t, "привет", truncate("привет", 0))
		require.Equal(t, "abc", truncate("abc", 3))
	})
}
