package dto

// StripeEvent is the subset of the Stripe webhook envelope this service
// reads.
type StripeEvent struct {
	ID         string          `json:"id"`
	APIVersion string          `json:"api_version"`
	Type       string          `json:"type"`
	Data       StripeEventData `json:"data"`
}

type StripeEventData struct {
	Object StripeObject `json:"object"`
}

// StripeObject is the subset of checkout-session and subscription objects
// this service reads. Amounts are in the smallest currency unit.
type StripeObject struct {
	ID                 string            `json:"id"`
	Customer           string            `json:"customer"`
	Subscription       string            `json:"subscription"`
	ClientReferenceID  string            `json:"client_reference_id"`
	Metadata           map[string]string `json:"metadata"`
	CurrentPeriodStart int64             `json:"current_period_start"`
	CurrentPeriodEnd   int64             `json:"current_period_end"`
	AmountTotal        int64             `json:"amount_total"`
	Currency           string            `json:"currency"`
}

// UserID extracts the application user the event refers to: the checkout
// client reference when present, else the userId metadata key stamped onto
// the subscription at checkout.
func (e *StripeEvent) UserID() string {
	if e.Data.Object.ClientReferenceID != "" {
		return e.Data.Object.ClientReferenceID
	}
	return e.Data.Object.Metadata["userId"]
}
