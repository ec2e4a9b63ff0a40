package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/painterconnectory/backend/internal/models"
	"gorm.io/gorm"
)

// GormProfileStore implements ProfileStore on PostgreSQL.
type GormProfileStore struct {
	db *gorm.DB
}

func NewGormProfileStore(db *gorm.DB) *GormProfileStore {
	return &GormProfileStore{db: db}
}

func (s *GormProfileStore) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	var p models.Profile
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

func (s *GormProfileStore) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var p models.Profile
	if err := s.db.WithContext(ctx).First(&p, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile by email: %w", err)
	}
	return &p, nil
}

func (s *GormProfileStore) Insert(ctx context.Context, p *models.Profile) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// UpdateFields writes only the named columns, leaving everything else
// untouched.
func (s *GormProfileStore) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	result := s.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("update profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (s *GormProfileStore) ListByRole(ctx context.Context, role string) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := s.db.WithContext(ctx).Where("role = ?", role).Order("created_at DESC").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return profiles, nil
}

// GormRefreshTokenStore implements RefreshTokenStore on PostgreSQL.
type GormRefreshTokenStore struct {
	db *gorm.DB
}

func NewGormRefreshTokenStore(db *gorm.DB) *GormRefreshTokenStore {
	return &GormRefreshTokenStore{db: db}
}

func (s *GormRefreshTokenStore) Create(ctx context.Context, t *models.RefreshToken) error {
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

func (s *GormRefreshTokenStore) GetActiveByHash(ctx context.Context, hash string) (*models.RefreshToken, error) {
	var t models.RefreshToken
	err := s.db.WithContext(ctx).Where("token_hash = ? AND revoked = false", hash).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("get refresh token: %w", err)
	}
	return &t, nil
}

func (s *GormRefreshTokenStore) Revoke(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Model(&models.RefreshToken{}).Where("id = ?", id).Update("revoked", true).Error
}

func (s *GormRefreshTokenStore) RevokeByHash(ctx context.Context, hash string) error {
	return s.db.WithContext(ctx).Model(&models.RefreshToken{}).Where("token_hash = ?", hash).Update("revoked", true).Error
}
