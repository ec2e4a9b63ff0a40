package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/painterconnectory/backend/internal/config"
	"github.com/painterconnectory/backend/internal/models"
	"github.com/painterconnectory/backend/internal/services"
	"github.com/painterconnectory/backend/internal/store"
)

func newWebhookApp(profiles store.ProfileStore, token string) *fiber.App {
	cfg := &config.Config{
		StripeWebhookToken: token,
		ProPlanAmount:      49.99,
		ProPlanCurrency:    "USD",
		ProPlanInterval:    "month",
	}
	handler := NewWebhookHandler(services.NewEntitlementService(profiles, cfg), cfg)

	app := fiber.New()
	app.Post("/api/webhooks/stripe", handler.HandleStripe)
	return app
}

func postWebhook(t *testing.T, app *fiber.App, token, body string) *http.Response {
	t.Helper()
	req, _ := http.NewRequest(http.MethodPost, "/api/webhooks/stripe", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("webhook request: %v", err)
	}
	return resp
}

func TestHandleStripe_RejectsBadToken(t *testing.T) {
	app := newWebhookApp(store.NewMemoryProfileStore(), "whsec_test")

	resp := postWebhook(t, app, "whsec_wrong", `{"type":"checkout.session.completed"}`)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}

	resp = postWebhook(t, app, "", `{"type":"checkout.session.completed"}`)
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}
}

func TestHandleStripe_NotConfigured(t *testing.T) {
	app := newWebhookApp(store.NewMemoryProfileStore(), "")

	resp := postWebhook(t, app, "", `{"type":"checkout.session.completed"}`)
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 when no token is configured, got %d", resp.StatusCode)
	}
}

func TestHandleStripe_CheckoutCompletedWritesEntitlement(t *testing.T) {
	profiles := store.NewMemoryProfileStore()
	_ = profiles.Insert(context.Background(), &models.Profile{ID: "u1", Email: "jane@example.com"})
	app := newWebhookApp(profiles, "whsec_test")

	body := `{
		"type": "checkout.session.completed",
		"data": {"object": {
			"client_reference_id": "u1",
			"customer": "cus_42",
			"subscription": "sub_42",
			"amount_total": 4999,
			"currency": "usd"
		}}
	}`
	resp := postWebhook(t, app, "whsec_test", body)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	stored, _ := profiles.GetByID(context.Background(), "u1")
	ent := models.DecodeJSON(stored.Subscription, models.SubscriptionEntitlement{})
	if ent.Status != models.SubscriptionStatusActive || ent.StripeCustomerID != "cus_42" {
		t.Fatalf("entitlement not written from event: %+v", ent)
	}
}

func TestHandleStripe_FailedEventReportsError(t *testing.T) {
	// Unknown user reference: checkout events must not be silently dropped.
	app := newWebhookApp(store.NewMemoryProfileStore(), "whsec_test")

	body := `{"type":"checkout.session.completed","data":{"object":{"client_reference_id":"ghost"}}}`
	resp := postWebhook(t, app, "whsec_test", body)
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.StatusCode)
	}
}
