package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"
	_ "go.uber.org/automaxprocs"
	"promptsync-backend/config"
	apiv1 "promptsync-backend/controllers/v1"
	_ "promptsync-backend/docs"
	"promptsync-backend/fiberlog"
	"promptsync-backend/initializers"
	"promptsync-backend/middleware"
)

// @title PromptSync API
// @version 1.0
// @description Преобразование ленивых промтов в супер-промты для выбранных моделей
// @BasePath /
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	services := initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		BodyLimit: config.Conf.App.BodyLimitKb * 1024,
	})
	app.Use(fiberRecover.New())

	swaggerCfg := swagger.Config{
		Path:     "/swagger",
		FilePath: "./docs/swagger.json",
	}
	app.Use(swagger.New(swaggerCfg))

	//api
	apiV1 := fiber.New()
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	if config.Conf.App.ErrNotifyURL != "" {
		apiV1.Use(middleware.ErrNotify(config.Conf.App.ErrNotifyURL))
	}
	apiV1.Use(middleware.WithBodyLimit(int64(config.Conf.App.BodyLimitKb) * 1024))
	app.Mount("/api/v1", apiV1)
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods:  "GET, POST, DELETE",
		ExposeHeaders: "Content-Disposition, X-Request-ID",
	}))
	apiv1.InitAuthApiRouters(apiV1, services.Auth)
	apiv1.InitPromptApiRouters(apiV1, services.Orchestrator, services.Governor, services.Analyzer)
	apiv1.InitUsageApiRouters(apiV1, services.Governor)
	apiv1.InitHistoryApiRouters(apiV1, services.History, services.Xls, services.Files)
	apiv1.InitWaitlistApiRouters(apiV1, services.Waitlist)

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-c
		log.Info("Gracefully shutting down...")
		cancel()
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
