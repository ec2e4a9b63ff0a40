package services

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/painterconnectory/backend/internal/dto"
	"github.com/painterconnectory/backend/internal/models"
	"github.com/painterconnectory/backend/internal/store"
)

func newAuthFixture() (*AuthService, *store.MemoryProfileStore) {
	cfg := testConfig()
	profiles := store.NewMemoryProfileStore()
	identity := NewIdentityService(profiles, cfg)
	auth := NewAuthService(profiles, store.NewMemoryRefreshTokenStore(), identity, cfg)
	return auth, profiles
}

func TestRegister_CreatesResolvedUser(t *testing.T) {
	auth, profiles := newAuthFixture()

	resp, err := auth.Register(context.Background(), &dto.RegisterRequest{
		Email:    "janepainter@example.com",
		Password: "correct horse",
		Name:     "Jane D.",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatalf("expected a token pair")
	}
	if resp.User.Role != models.RolePainter {
		t.Fatalf("expected painter role from email heuristic, got %q", resp.User.Role)
	}
	if resp.User.Name != "Jane D." {
		t.Fatalf("expected provided name, got %q", resp.User.Name)
	}

	stored, err := profiles.GetByID(context.Background(), resp.User.ID)
	if err != nil {
		t.Fatalf("profile not persisted: %v", err)
	}
	if stored.Password == "" || stored.Password == "correct horse" {
		t.Fatalf("password must be stored hashed")
	}
	if stored.AuthProvider != "email" {
		t.Fatalf("expected email auth provider, got %q", stored.AuthProvider)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	auth, _ := newAuthFixture()

	req := &dto.RegisterRequest{Email: "jane@example.com", Password: "correct horse"}
	if _, err := auth.Register(context.Background(), req); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := auth.Register(context.Background(), req); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegister_RejectsShortPassword(t *testing.T) {
	auth, profiles := newAuthFixture()

	if _, err := auth.Register(context.Background(), &dto.RegisterRequest{
		Email: "jane@example.com", Password: "short",
	}); err == nil {
		t.Fatalf("expected validation error")
	}
	if profiles.Count() != 0 {
		t.Fatalf("no profile should have been created")
	}
}

func TestLogin_Roundtrip(t *testing.T) {
	auth, _ := newAuthFixture()

	if _, err := auth.Register(context.Background(), &dto.RegisterRequest{
		Email: "jane@example.com", Password: "correct horse",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	resp, err := auth.Login(context.Background(), &dto.LoginRequest{
		Email: "jane@example.com", Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	token, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("access token does not verify: %v", err)
	}
	claims := token.Claims.(jwt.MapClaims)
	if claims["sub"] != resp.User.ID || claims["email"] != "jane@example.com" {
		t.Fatalf("unexpected claims: %v", claims)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	auth, _ := newAuthFixture()

	if _, err := auth.Register(context.Background(), &dto.RegisterRequest{
		Email: "jane@example.com", Password: "correct horse",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := auth.Login(context.Background(), &dto.LoginRequest{
		Email: "jane@example.com", Password: "wrong horse",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := auth.Login(context.Background(), &dto.LoginRequest{
		Email: "nobody@example.com", Password: "correct horse",
	}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestRefresh_RotatesToken(t *testing.T) {
	auth, _ := newAuthFixture()

	reg, err := auth.Register(context.Background(), &dto.RegisterRequest{
		Email: "jane@example.com", Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	refreshed, err := auth.Refresh(context.Background(), &dto.RefreshRequest{RefreshToken: reg.RefreshToken})
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.RefreshToken == reg.RefreshToken {
		t.Fatalf("refresh must rotate the token")
	}

	// The presented token is single-use.
	if _, err := auth.Refresh(context.Background(), &dto.RefreshRequest{RefreshToken: reg.RefreshToken}); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken on reuse, got %v", err)
	}

	if _, err := auth.Refresh(context.Background(), &dto.RefreshRequest{RefreshToken: refreshed.RefreshToken}); err != nil {
		t.Fatalf("rotated token must stay usable: %v", err)
	}
}

func TestLogout_RevokesToken(t *testing.T) {
	auth, _ := newAuthFixture()

	reg, err := auth.Register(context.Background(), &dto.RegisterRequest{
		Email: "jane@example.com", Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := auth.Logout(context.Background(), &dto.LogoutRequest{RefreshToken: reg.RefreshToken}); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := auth.Refresh(context.Background(), &dto.RefreshRequest{RefreshToken: reg.RefreshToken}); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken after logout, got %v", err)
	}
}
