package models

import "testing"

func TestDecodeJSON_Object(t *testing.T) {
	raw := []byte(`{"status":"active","plan":"pro","stripeCustomerId":"cus_123"}`)

	ent := DecodeJSON(raw, SubscriptionEntitlement{})
	if ent.Status != SubscriptionStatusActive {
		t.Fatalf("expected status active, got %q", ent.Status)
	}
	if ent.StripeCustomerID != "cus_123" {
		t.Fatalf("expected stripe customer cus_123, got %q", ent.StripeCustomerID)
	}
}

func TestDecodeJSON_DoubleEncodedString(t *testing.T) {
	// Legacy rows store the object as a JSON string.
	raw := []byte(`"{\"status\":\"trial\",\"plan\":\"pro\"}"`)

	ent := DecodeJSON(raw, SubscriptionEntitlement{})
	if ent.Status != SubscriptionStatusTrial {
		t.Fatalf("expected status trial, got %q", ent.Status)
	}
	if ent.Plan != PlanPro {
		t.Fatalf("expected plan pro, got %q", ent.Plan)
	}
}

func TestDecodeJSON_FallbackCases(t *testing.T) {
	cases := map[string][]byte{
		"absent":           nil,
		"empty":            []byte(""),
		"null":             []byte("null"),
		"wrong type":       []byte("123"),
		"array":            []byte("[1,2,3]"),
		"garbage string":   []byte(`"not an object"`),
		"truncated object": []byte(`{"city":`),
	}

	for name, raw := range cases {
		loc := DecodeJSON(raw, Location{})
		if loc != (Location{}) {
			t.Fatalf("%s: expected empty default, got %+v", name, loc)
		}
	}
}

func TestDecodeJSON_PartialObjectKeepsKnownFields(t *testing.T) {
	raw := []byte(`{"city":"Portland","unknownField":true}`)

	loc := DecodeJSON(raw, Location{})
	if loc.City != "Portland" {
		t.Fatalf("expected city Portland, got %q", loc.City)
	}
}

func TestHasStoredValue(t *testing.T) {
	if HasStoredValue(nil) || HasStoredValue([]byte(" ")) || HasStoredValue([]byte("null")) {
		t.Fatalf("absent values should not count as stored")
	}
	if !HasStoredValue([]byte("{}")) {
		t.Fatalf("an empty object is still a stored value")
	}
}
