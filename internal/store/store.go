package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/painterconnectory/backend/internal/models"
)

var (
	// ErrProfileNotFound means no profile row exists for the given ID.
	// Callers must distinguish it from transport failures: the identity
	// resolver creates a profile on not-found, the entitlement reconciler
	// surfaces it to the user.
	ErrProfileNotFound = errors.New("profile not found")

	ErrTokenNotFound = errors.New("refresh token not found")
)

// ProfileStore is the keyed record store backing canonical users. Updates
// are partial: UpdateFields must not clobber columns it was not given.
type ProfileStore interface {
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	Insert(ctx context.Context, p *models.Profile) error
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	ListByRole(ctx context.Context, role string) ([]models.Profile, error)
}

// RefreshTokenStore persists hashed refresh tokens for rotation.
type RefreshTokenStore interface {
	Create(ctx context.Context, t *models.RefreshToken) error
	GetActiveByHash(ctx context.Context, hash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uuid.UUID) error
	RevokeByHash(ctx context.Context, hash string) error
}
