package main

import (
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/orfon/fbmessenger/configs"
	"github.com/orfon/fbmessenger/internal/application/controller"
	"github.com/orfon/fbmessenger/internal/application/middleware"
	"github.com/orfon/fbmessenger/internal/application/processor"
	"github.com/orfon/fbmessenger/pkg/log"
	"github.com/orfon/fbmessenger/pkg/messenger"
	"github.com/orfon/fbmessenger/pkg/msg"
	"github.com/orfon/fbmessenger/pkg/resource"
)

func main() {
	// Load a local .env for development; in production the variables
	// arrive through the environment.
	_ = godotenv.Load()
	configs.Load()

	log.Info(msg.GetMessage("app.start"))

	if configs.Env.PageAccessToken == "" || configs.Env.VerifyToken == "" {
		log.Fatal("PAGE_ACCESS_TOKEN and VERIFY_TOKEN are required")
	}

	// Init infra
	e := echo.New()
	e.HideBanner = true
	middleware.SetupRequestLogger(e)
	api := e.Group(resource.GetString("app.server.context-path"))

	// Init client
	client := messenger.New(configs.Env.PageAccessToken, messenger.Options{
		Version: resource.GetString("messenger.api-version"),
	})

	// Init processor
	replyProcessor := processor.NewReplyProcessor(client)

	// Init controllers
	healthController := controller.NewHealthController(api)
	webhookController := controller.NewWebhookController(api, controller.WebhookConfig{
		Path:        resource.GetString("messenger.webhook-path"),
		PageID:      configs.Env.PageID,
		VerifyToken: configs.Env.VerifyToken,
		AppSecret:   configs.Env.AppSecret,
	}, replyProcessor)

	// Init routes
	healthController.InitHealthRoutes()
	webhookController.InitWebhookRoutes()

	e.Logger.Fatal(e.Start(":" + resource.GetString("app.server.port")))
}
