package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/painterconnectory/backend/internal/dto"
	"github.com/painterconnectory/backend/internal/metrics"
	"github.com/painterconnectory/backend/internal/middleware"
	"github.com/painterconnectory/backend/internal/services"
	"github.com/painterconnectory/backend/internal/store"
)

type SubscriptionHandler struct {
	entitlements *services.EntitlementService
	metrics      *metrics.Metrics
}

func NewSubscriptionHandler(entitlements *services.EntitlementService, m *metrics.Metrics) *SubscriptionHandler {
	return &SubscriptionHandler{entitlements: entitlements, metrics: m}
}

// Sync is the manual "sync subscription" action: it realigns the stored
// entitlement with the payment processor when the webhook has not landed.
// Unlike session resolution, the outcome is reported definitively.
func (h *SubscriptionHandler) Sync(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	ent, err := h.entitlements.ReconcileAfterCheckout(c.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			h.metrics.ObserveReconciliation("not_found")
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "No profile found for this account",
			})
		}
		h.metrics.ObserveReconciliation("error")
		slog.Error("subscription sync failed",
			"operation", "entitlement.reconcile", "user_id", userID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to sync subscription",
		})
	}

	h.metrics.ObserveReconciliation("ok")
	return c.JSON(ent)
}
