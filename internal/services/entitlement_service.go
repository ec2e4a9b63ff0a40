package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/painterconnectory/backend/internal/config"
	"github.com/painterconnectory/backend/internal/dto"
	"github.com/painterconnectory/backend/internal/models"
	"github.com/painterconnectory/backend/internal/store"
	"gorm.io/datatypes"
)

// EntitlementService re-derives a user's subscription state. The normal path
// is the Stripe webhook (ApplyWebhookEvent); ReconcileAfterCheckout is the
// manual fallback for when that delivery has not landed yet.
//
// Concurrent reconciliations for the same user are last-write-wins; the sync
// path is driven by a user-pressed button, so no locking is applied.
type EntitlementService struct {
	profiles store.ProfileStore
	cfg      *config.Config
	now      func() time.Time
}

func NewEntitlementService(profiles store.ProfileStore, cfg *config.Config) *EntitlementService {
	return &EntitlementService{
		profiles: profiles,
		cfg:      cfg,
		now:      time.Now,
	}
}

// ReconcileAfterCheckout synthesizes a fresh one-month active entitlement
// for an existing profile and persists it onto the subscription column only.
// Unlike session resolution, failures here are surfaced: the caller pressed
// a button and needs a definitive outcome.
//
// Repeat calls each produce a new now+1mo window, never a cumulative
// extension.
func (s *EntitlementService) ReconcileAfterCheckout(ctx context.Context, userID string) (*models.SubscriptionEntitlement, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if errors.Is(err, store.ErrProfileNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	// Prior billing references survive reconciliation, whatever storage
	// form they were written in.
	prev := models.DecodeJSON(profile.Subscription, models.SubscriptionEntitlement{})

	start := s.now().UTC()
	end := start.AddDate(0, 1, 0)

	ent := &models.SubscriptionEntitlement{
		Status:               models.SubscriptionStatusActive,
		Plan:                 models.PlanPro,
		StartDate:            &start,
		EndDate:              &end,
		Amount:               s.cfg.ProPlanAmount,
		Currency:             s.cfg.ProPlanCurrency,
		Interval:             s.cfg.ProPlanInterval,
		StripeCustomerID:     prev.StripeCustomerID,
		StripeSubscriptionID: prev.StripeSubscriptionID,
		LastFour:             prev.LastFour,
		Brand:                prev.Brand,
		PaymentMethodID:      prev.PaymentMethodID,
	}
	if ent.StripeCustomerID == "" {
		ent.StripeCustomerID = models.ManualSyncRef
	}
	if ent.StripeSubscriptionID == "" {
		ent.StripeSubscriptionID = models.ManualSyncRef
	}

	if err := s.persist(ctx, userID, ent); err != nil {
		return nil, err
	}

	slog.Info("subscription reconciled",
		"operation", "entitlement.reconcile", "user_id", userID, "end_date", end)
	return ent, nil
}

// ApplyWebhookEvent updates the stored entitlement from a payment-processor
// event. Unknown event types are ignored.
func (s *EntitlementService) ApplyWebhookEvent(ctx context.Context, event *dto.StripeEvent) error {
	switch event.Type {
	case "checkout.session.completed":
		return s.applyCheckoutCompleted(ctx, event)
	case "customer.subscription.deleted":
		return s.applyStatusChange(ctx, event, models.SubscriptionStatusCanceled)
	case "invoice.payment_failed":
		return s.applyStatusChange(ctx, event, models.SubscriptionStatusPastDue)
	default:
		return nil
	}
}

func (s *EntitlementService) applyCheckoutCompleted(ctx context.Context, event *dto.StripeEvent) error {
	userID := event.UserID()
	if userID == "" {
		return errors.New("checkout event carries no user reference")
	}

	if _, err := s.profiles.GetByID(ctx, userID); err != nil {
		return fmt.Errorf("load profile for checkout event: %w", err)
	}

	obj := event.Data.Object
	start := s.now().UTC()
	if obj.CurrentPeriodStart > 0 {
		start = time.Unix(obj.CurrentPeriodStart, 0).UTC()
	}
	end := start.AddDate(0, 1, 0)
	if obj.CurrentPeriodEnd > 0 {
		end = time.Unix(obj.CurrentPeriodEnd, 0).UTC()
	}

	amount := s.cfg.ProPlanAmount
	if obj.AmountTotal > 0 {
		amount = float64(obj.AmountTotal) / 100
	}
	currency := s.cfg.ProPlanCurrency
	if obj.Currency != "" {
		currency = obj.Currency
	}

	ent := &models.SubscriptionEntitlement{
		Status:               models.SubscriptionStatusActive,
		Plan:                 models.PlanPro,
		StartDate:            &start,
		EndDate:              &end,
		Amount:               amount,
		Currency:             currency,
		Interval:             s.cfg.ProPlanInterval,
		StripeCustomerID:     obj.Customer,
		StripeSubscriptionID: obj.Subscription,
	}

	if err := s.persist(ctx, userID, ent); err != nil {
		return err
	}
	slog.Info("subscription updated from webhook",
		"operation", "entitlement.webhook", "user_id", userID, "event_type", event.Type)
	return nil
}

// applyStatusChange flips the stored status on an explicit external signal.
// Status is never downgraded without one.
func (s *EntitlementService) applyStatusChange(ctx context.Context, event *dto.StripeEvent, status string) error {
	userID := event.UserID()
	if userID == "" {
		return errors.New("subscription event carries no user reference")
	}

	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("load profile for subscription event: %w", err)
	}

	ent := models.DecodeJSON(profile.Subscription, models.SubscriptionEntitlement{})
	ent.Status = status
	if err := s.persist(ctx, userID, &ent); err != nil {
		return err
	}
	slog.Info("subscription status changed from webhook",
		"operation", "entitlement.webhook", "user_id", userID, "status", status)
	return nil
}

func (s *EntitlementService) persist(ctx context.Context, userID string, ent *models.SubscriptionEntitlement) error {
	raw, err := json.Marshal(ent)
	if err != nil {
		return fmt.Errorf("encode entitlement: %w", err)
	}
	if err := s.profiles.UpdateFields(ctx, userID, map[string]interface{}{
		"subscription": datatypes.JSON(raw),
	}); err != nil {
		return fmt.Errorf("persist entitlement: %w", err)
	}
	return nil
}
