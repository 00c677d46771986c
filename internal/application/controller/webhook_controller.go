package controller

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/orfon/fbmessenger/internal/application/processor"
	"github.com/orfon/fbmessenger/pkg/log"
	"github.com/orfon/fbmessenger/pkg/msg"
	"github.com/orfon/fbmessenger/pkg/webhook"
)

const maxCallbackBody = 1 << 20 // 1MB

// WebhookConfig carries the page identity the controller verifies against.
type WebhookConfig struct {
	Path        string
	PageID      string
	VerifyToken string
	// AppSecret enables payload signature checking when set.
	AppSecret string
}

type WebhookController struct {
	api     *echo.Group
	config  WebhookConfig
	handler processor.Handler
}

func NewWebhookController(api *echo.Group, config WebhookConfig, handler processor.Handler) *WebhookController {
	if config.Path == "" {
		config.Path = "/webhook"
	}
	return &WebhookController{api: api, config: config, handler: handler}
}

// InitWebhookRoutes initializes the verification and callback routes
func (controller *WebhookController) InitWebhookRoutes() {
	controller.api.GET(controller.config.Path, controller.Verify)
	controller.api.POST(controller.config.Path, controller.Receive)
}

// Verify answers Facebook's webhook verification handshake: on a subscribe
// request with the right verify token the challenge string is echoed back.
func (controller *WebhookController) Verify(c echo.Context) error {
	mode := c.QueryParam("hub.mode")
	token := c.QueryParam("hub.verify_token")
	challenge := c.QueryParam("hub.challenge")

	if mode != "subscribe" || token != controller.config.VerifyToken {
		log.Warn(msg.GetMessage("webhook.verify-denied"))
		return c.NoContent(http.StatusForbidden)
	}

	log.Info(msg.GetMessage("webhook.verified", mode))
	return c.String(http.StatusOK, challenge)
}

// Receive decodes a callback envelope and hands every messaging event for
// the configured page to the reply handler. A failing event is logged and
// does not stop its siblings; Facebook always gets a 200 so the callback is
// not redelivered.
func (controller *WebhookController) Receive(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxCallbackBody))
	if err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	if controller.config.AppSecret != "" {
		signature := c.Request().Header.Get(webhook.SignatureHeader)
		if !webhook.ValidateSignature(body, controller.config.AppSecret, signature) {
			log.Warn(msg.GetMessage("webhook.bad-signature"))
			return c.NoContent(http.StatusForbidden)
		}
	}

	var event webhook.Event
	if err := json.Unmarshal(body, &event); err != nil {
		return c.NoContent(http.StatusBadRequest)
	}

	if !webhook.IsMessagingEvent(&event) || event.Object != "page" {
		log.Debug(msg.GetMessage("webhook.ignored", event.Object))
		return c.String(http.StatusOK, "EVENT_RECEIVED")
	}

	for _, messaging := range webhook.MessagingForPage(&event, controller.config.PageID) {
		if err := controller.handler.HandleMessaging(messaging); err != nil {
			log.Error(msg.GetMessage("webhook.event-failed", messaging.Sender.ID, err))
		}
	}

	return c.String(http.StatusOK, "EVENT_RECEIVED")
}
