package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/painterconnectory/backend/internal/config"
	"github.com/painterconnectory/backend/internal/metrics"
	"github.com/painterconnectory/backend/internal/models"
	"github.com/painterconnectory/backend/internal/services"
	"github.com/painterconnectory/backend/internal/store"
)

// fakeJWT plants verified-looking claims the way the JWT guard does, so the
// handler under test reads the same context shape it sees in production.
func fakeJWT(userID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := jwt.MapClaims{}
		if userID != "" {
			claims["sub"] = userID
		}
		c.Locals("user", &jwt.Token{Claims: claims})
		return c.Next()
	}
}

func newSyncApp(profiles store.ProfileStore, userID string) *fiber.App {
	cfg := &config.Config{
		ProPlanAmount:   49.99,
		ProPlanCurrency: "USD",
		ProPlanInterval: "month",
	}
	handler := NewSubscriptionHandler(services.NewEntitlementService(profiles, cfg), metrics.New())

	app := fiber.New()
	app.Post("/api/subscriptions/sync", fakeJWT(userID), handler.Sync)
	return app
}

func TestSync_ReturnsFreshEntitlement(t *testing.T) {
	profiles := store.NewMemoryProfileStore()
	_ = profiles.Insert(context.Background(), &models.Profile{ID: "u1", Email: "jane@example.com"})
	app := newSyncApp(profiles, "u1")

	req, _ := http.NewRequest(http.MethodPost, "/api/subscriptions/sync", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("sync request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var ent models.SubscriptionEntitlement
	if err := json.NewDecoder(resp.Body).Decode(&ent); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if ent.Status != models.SubscriptionStatusActive || ent.Plan != models.PlanPro {
		t.Fatalf("unexpected entitlement: %+v", ent)
	}
	if ent.StripeCustomerID != models.ManualSyncRef {
		t.Fatalf("expected manual sync sentinel, got %q", ent.StripeCustomerID)
	}

	stored, _ := profiles.GetByID(context.Background(), "u1")
	if !models.HasStoredValue(stored.Subscription) {
		t.Fatalf("entitlement not persisted")
	}
}

func TestSync_UnknownProfile(t *testing.T) {
	app := newSyncApp(store.NewMemoryProfileStore(), "ghost")

	req, _ := http.NewRequest(http.MethodPost, "/api/subscriptions/sync", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("sync request: %v", err)
	}
	if resp.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestSync_MissingSubject(t *testing.T) {
	app := newSyncApp(store.NewMemoryProfileStore(), "")

	req, _ := http.NewRequest(http.MethodPost, "/api/subscriptions/sync", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("sync request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}
