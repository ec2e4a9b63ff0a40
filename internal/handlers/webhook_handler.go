package handlers

import (
	"crypto/subtle"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/painterconnectory/backend/internal/config"
	"github.com/painterconnectory/backend/internal/dto"
	"github.com/painterconnectory/backend/internal/services"
)

type WebhookHandler struct {
	entitlements *services.EntitlementService
	cfg          *config.Config
}

func NewWebhookHandler(entitlements *services.EntitlementService, cfg *config.Config) *WebhookHandler {
	return &WebhookHandler{entitlements: entitlements, cfg: cfg}
}

// HandleStripe applies checkout and subscription lifecycle events. Auth is a
// shared token compared in constant time.
func (h *WebhookHandler) HandleStripe(c *fiber.Ctx) error {
	if h.cfg.StripeWebhookToken == "" {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Webhooks not configured",
		})
	}

	authHeader := c.Get("Authorization")
	if subtle.ConstantTimeCompare([]byte(authHeader), []byte(h.cfg.StripeWebhookToken)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var event dto.StripeEvent
	if err := c.BodyParser(&event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid webhook payload",
		})
	}

	if err := h.entitlements.ApplyWebhookEvent(c.Context(), &event); err != nil {
		slog.Error("webhook processing failed",
			"operation", "entitlement.webhook", "event_type", event.Type, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to process webhook event",
		})
	}

	slog.Info("webhook processed", "event_type", event.Type)
	return c.JSON(fiber.Map{"received": true})
}
