package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/painterconnectory/backend/internal/config"
	"github.com/painterconnectory/backend/internal/models"
	"github.com/painterconnectory/backend/internal/store"
)

// ProviderRecord is what the identity provider hands us after a successful
// authentication: a stable ID, an optional email, and a free-form metadata
// bag. This service never authenticates anything itself.
type ProviderRecord struct {
	ID       string           `json:"id"`
	Email    string           `json:"email"`
	Metadata ProviderMetadata `json:"metadata"`
}

type ProviderMetadata struct {
	Name      string `json:"name,omitempty"`
	Role      string `json:"role,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// IdentityService derives a canonical application user from a provider
// record, lazily creating the backing profile on first sight. Authentication
// success at the provider is the source of truth for "is this a valid
// session"; the profile store only enriches it, so no store failure on this
// path ever reaches the caller.
type IdentityService struct {
	profiles    store.ProfileStore
	adminEmails []string
}

func NewIdentityService(profiles store.ProfileStore, cfg *config.Config) *IdentityService {
	return &IdentityService{
		profiles:    profiles,
		adminEmails: cfg.AdminEmailList(),
	}
}

// Resolve builds the canonical user for a provider record. It returns nil
// only when the record is absent or carries no usable identifier.
func (s *IdentityService) Resolve(ctx context.Context, rec *ProviderRecord) *models.CanonicalUser {
	if rec == nil || rec.ID == "" {
		return nil
	}

	user := s.provisionalUser(rec)

	profile, err := s.profiles.GetByID(ctx, rec.ID)
	if errors.Is(err, store.ErrProfileNotFound) {
		// First sight: persist a profile with the inferred defaults.
		// Creation is best-effort, not transactional with login; a failed
		// write still leaves the caller with a usable in-memory user.
		if insertErr := s.profiles.Insert(ctx, profileFromUser(user)); insertErr != nil {
			slog.Error("profile creation failed, continuing with in-memory user",
				"operation", "identity.resolve", "user_id", user.ID, "error", insertErr)
		}
		return user
	}
	if err != nil {
		slog.Error("profile lookup failed, returning degraded user",
			"operation", "identity.resolve", "user_id", user.ID, "error", err)
		return user
	}

	return mergeProfile(user, profile)
}

// provisionalUser builds a user from provider fields alone.
func (s *IdentityService) provisionalUser(rec *ProviderRecord) *models.CanonicalUser {
	name := rec.Metadata.Name
	if name == "" {
		name = emailLocalPart(rec.Email)
	}

	user := &models.CanonicalUser{
		ID:    rec.ID,
		Name:  name,
		Email: rec.Email,
		Role:  s.inferRole(rec),
	}
	if rec.Metadata.AvatarURL != "" {
		avatar := rec.Metadata.AvatarURL
		user.Avatar = &avatar
	}
	return user
}

// inferRole applies the one-time default-assignment rule: admin allow-list
// beats a metadata role hint, which beats the email heuristic.
func (s *IdentityService) inferRole(rec *ProviderRecord) string {
	if s.isAdminEmail(rec.Email) {
		return models.RoleAdmin
	}
	switch rec.Metadata.Role {
	case models.RoleCustomer, models.RolePainter, models.RoleAdmin:
		return rec.Metadata.Role
	}
	if strings.Contains(strings.ToLower(emailLocalPart(rec.Email)), "painter") {
		return models.RolePainter
	}
	return models.RoleCustomer
}

func (s *IdentityService) isAdminEmail(email string) bool {
	lower := strings.ToLower(email)
	for _, admin := range s.adminEmails {
		if lower == admin {
			return true
		}
	}
	return false
}

// mergeProfile layers stored fields over the provisional user. Stored
// name/avatar/role win when present; email always stays the provider's.
func mergeProfile(user *models.CanonicalUser, profile *models.Profile) *models.CanonicalUser {
	if profile.Name != "" {
		user.Name = profile.Name
	}
	if profile.Avatar != nil && *profile.Avatar != "" {
		user.Avatar = profile.Avatar
	}
	if profile.Role != "" {
		user.Role = profile.Role
	}

	if models.HasStoredValue(profile.Location) {
		loc := models.DecodeJSON(profile.Location, models.Location{})
		user.Location = &loc
	}
	if models.HasStoredValue(profile.Subscription) {
		sub := models.DecodeJSON(profile.Subscription, models.SubscriptionEntitlement{})
		user.Subscription = &sub
	}
	if user.Role == models.RolePainter {
		info := models.DecodeJSON(profile.CompanyInfo, models.CompanyInfo{})
		user.CompanyInfo = &info
	}

	return user
}

func profileFromUser(u *models.CanonicalUser) *models.Profile {
	return &models.Profile{
		ID:     u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   u.Role,
		Avatar: u.Avatar,
	}
}

func emailLocalPart(email string) string {
	return strings.Split(email, "@")[0]
}
