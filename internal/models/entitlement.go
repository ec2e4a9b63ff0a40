package models

import "time"

// Subscription statuses mirrored from the payment processor.
const (
	SubscriptionStatusTrial    = "trial"
	SubscriptionStatusActive   = "active"
	SubscriptionStatusCanceled = "canceled"
	SubscriptionStatusPastDue  = "past_due"
)

// PlanPro is the single paid plan.
const PlanPro = "pro"

// ManualSyncRef marks billing references synthesized by a manual
// reconciliation when no processor identifiers were stored previously.
const ManualSyncRef = "manual_sync"

// SubscriptionEntitlement is the billing state attached to a user. The JSON
// tags match the shape the web client stores in the profile's subscription
// column, so a stored value round-trips unchanged.
//
// An entitlement with status active or trial implies plan pro and a non-nil
// EndDate. Stripe references are preserved across updates unless explicitly
// replaced.
type SubscriptionEntitlement struct {
	Status               string     `json:"status"`
	Plan                 string     `json:"plan"`
	StartDate            *time.Time `json:"startDate"`
	EndDate              *time.Time `json:"endDate"`
	Amount               float64    `json:"amount"`
	Currency             string     `json:"currency"`
	Interval             string     `json:"interval"`
	StripeCustomerID     string     `json:"stripeCustomerId"`
	StripeSubscriptionID string     `json:"stripeSubscriptionId"`
	LastFour             string     `json:"lastFour,omitempty"`
	Brand                string     `json:"brand,omitempty"`
	PaymentMethodID      string     `json:"paymentMethodId,omitempty"`
}

// Entitled reports whether the entitlement currently grants pro access.
func (e SubscriptionEntitlement) Entitled() bool {
	return e.Status == SubscriptionStatusActive || e.Status == SubscriptionStatusTrial
}
