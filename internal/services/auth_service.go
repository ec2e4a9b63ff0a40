package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/painterconnectory/backend/internal/config"
	"github.com/painterconnectory/backend/internal/dto"
	"github.com/painterconnectory/backend/internal/models"
	"github.com/painterconnectory/backend/internal/store"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService is the local email/password identity provider. On every
// successful authentication it feeds the provider record through the
// identity resolver, so the response always carries the canonical user.
type AuthService struct {
	profiles store.ProfileStore
	tokens   store.RefreshTokenStore
	identity *IdentityService
	cfg      *config.Config
}

func NewAuthService(profiles store.ProfileStore, tokens store.RefreshTokenStore, identity *IdentityService, cfg *config.Config) *AuthService {
	return &AuthService{
		profiles: profiles,
		tokens:   tokens,
		identity: identity,
		cfg:      cfg,
	}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if len(req.Email) == 0 || len(req.Password) < 8 {
		return nil, errors.New("email required and password must be at least 8 characters")
	}

	if _, err := s.profiles.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrProfileNotFound) {
		return nil, fmt.Errorf("check existing email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	rec := &ProviderRecord{
		ID:    uuid.NewString(),
		Email: req.Email,
		Metadata: ProviderMetadata{
			Name: req.Name,
		},
	}

	user := s.identity.Resolve(ctx, rec)
	if user == nil {
		return nil, errors.New("could not resolve new user")
	}

	if err := s.profiles.UpdateFields(ctx, user.ID, map[string]interface{}{
		"password":      string(hash),
		"auth_provider": "email",
	}); err != nil {
		return nil, fmt.Errorf("store credentials: %w", err)
	}

	return s.generateTokenPair(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	profile, err := s.profiles.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	user := s.identity.Resolve(ctx, &ProviderRecord{ID: profile.ID, Email: profile.Email})
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	return s.generateTokenPair(ctx, user)
}

func (s *AuthService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	stored, err := s.tokens.GetActiveByHash(ctx, tokenHash)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		_ = s.tokens.Revoke(ctx, stored.ID)
		return nil, ErrInvalidToken
	}

	// Rotation: the presented token is single-use.
	if err := s.tokens.Revoke(ctx, stored.ID); err != nil {
		return nil, fmt.Errorf("revoke refresh token: %w", err)
	}

	profile, err := s.profiles.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user := s.identity.Resolve(ctx, &ProviderRecord{ID: profile.ID, Email: profile.Email})
	if user == nil {
		return nil, ErrUserNotFound
	}

	return s.generateTokenPair(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	return s.tokens.RevokeByHash(ctx, hashToken(req.RefreshToken))
}

func (s *AuthService) generateTokenPair(ctx context.Context, user *models.CanonicalUser) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         *user,
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.CanonicalUser) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(ctx context.Context, user *models.CanonicalUser) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.tokens.Create(ctx, &record); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
