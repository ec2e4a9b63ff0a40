package models

// Location is a structured address record set by the user. Absent until the
// user provides one.
type Location struct {
	Address   string  `json:"address,omitempty"`
	City      string  `json:"city,omitempty"`
	State     string  `json:"state,omitempty"`
	ZipCode   string  `json:"zipCode,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// CompanyInfo is the business profile a painter fills in.
type CompanyInfo struct {
	CompanyName     string   `json:"companyName,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	YearsInBusiness int      `json:"yearsInBusiness,omitempty"`
	IsInsured       bool     `json:"isInsured,omitempty"`
	Specialties     []string `json:"specialties,omitempty"`
	Portfolio       []string `json:"portfolio,omitempty"`
}

// CanonicalUser is the application's view of a user, derived from the
// identity-provider record enriched with the stored profile. Email always
// comes from the provider, never the store.
type CanonicalUser struct {
	ID           string                   `json:"id"`
	Name         string                   `json:"name"`
	Email        string                   `json:"email"`
	Role         string                   `json:"role"`
	Avatar       *string                  `json:"avatar,omitempty"`
	Location     *Location                `json:"location,omitempty"`
	Subscription *SubscriptionEntitlement `json:"subscription,omitempty"`
	CompanyInfo  *CompanyInfo             `json:"companyInfo,omitempty"`
}
