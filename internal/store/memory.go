package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/painterconnectory/backend/internal/models"
	"gorm.io/datatypes"
)

// MemoryProfileStore is an in-memory ProfileStore used by tests and local
// development. Column-name semantics mirror the Postgres implementation so
// partial updates behave identically.
type MemoryProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]models.Profile
}

func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{profiles: make(map[string]models.Profile)}
}

func (s *MemoryProfileStore) GetByID(_ context.Context, id string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, ErrProfileNotFound
	}
	cp := p
	return &cp, nil
}

func (s *MemoryProfileStore) GetByEmail(_ context.Context, email string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.profiles {
		if p.Email == email {
			cp := p
			return &cp, nil
		}
	}
	return nil, ErrProfileNotFound
}

func (s *MemoryProfileStore) Insert(_ context.Context, p *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.ID] = *p
	return nil
}

func (s *MemoryProfileStore) UpdateFields(_ context.Context, id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return ErrProfileNotFound
	}
	for col, val := range fields {
		switch col {
		case "email":
			p.Email, _ = val.(string)
		case "password":
			p.Password, _ = val.(string)
		case "name":
			p.Name, _ = val.(string)
		case "role":
			p.Role, _ = val.(string)
		case "auth_provider":
			p.AuthProvider, _ = val.(string)
		case "location":
			p.Location, _ = val.(datatypes.JSON)
		case "subscription":
			p.Subscription, _ = val.(datatypes.JSON)
		case "company_info":
			p.CompanyInfo, _ = val.(datatypes.JSON)
		}
	}
	s.profiles[id] = p
	return nil
}

func (s *MemoryProfileStore) ListByRole(_ context.Context, role string) ([]models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Profile
	for _, p := range s.profiles {
		if p.Role == role {
			out = append(out, p)
		}
	}
	return out, nil
}

// Count reports the number of stored profiles.
func (s *MemoryProfileStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles)
}

// MemoryRefreshTokenStore is an in-memory RefreshTokenStore.
type MemoryRefreshTokenStore struct {
	mu     sync.Mutex
	tokens map[uuid.UUID]models.RefreshToken
}

func NewMemoryRefreshTokenStore() *MemoryRefreshTokenStore {
	return &MemoryRefreshTokenStore{tokens: make(map[uuid.UUID]models.RefreshToken)}
}

func (s *MemoryRefreshTokenStore) Create(_ context.Context, t *models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	s.tokens[t.ID] = *t
	return nil
}

func (s *MemoryRefreshTokenStore) GetActiveByHash(_ context.Context, hash string) (*models.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tokens {
		if t.TokenHash == hash && !t.Revoked {
			cp := t
			return &cp, nil
		}
	}
	return nil, ErrTokenNotFound
}

func (s *MemoryRefreshTokenStore) Revoke(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.tokens[id]; ok {
		t.Revoked = true
		s.tokens[id] = t
	}
	return nil
}

func (s *MemoryRefreshTokenStore) RevokeByHash(_ context.Context, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.tokens {
		if t.TokenHash == hash {
			t.Revoked = true
			s.tokens[id] = t
		}
	}
	return nil
}
