// Package memory provides in-memory driven.* store implementations.
// Used for tests and for running the server without persistence.
package memory

import (
	"context"
	"sync"

	"github.com/matcha-labs/matcha-mcp/internal/core/domain"
	"github.com/matcha-labs/matcha-mcp/internal/core/ports/driven"
)

// Ensure ProfileStore implements the interface.
var _ driven.ProfileStore = (*ProfileStore)(nil)

// ProfileStore is an in-memory implementation of driven.ProfileStore.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]domain.Profile
	byUser   map[string]string
}

// NewProfileStore creates a new in-memory profile store.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		profiles: make(map[string]domain.Profile),
		byUser:   make(map[string]string),
	}
}

// Save stores or updates a profile.
func (s *ProfileStore) Save(_ context.Context, profile domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.ID] = profile
	s.byUser[profile.UserID] = profile.ID
	return nil
}

// Get retrieves a profile by ID.
func (s *ProfileStore) Get(_ context.Context, id string) (*domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &profile, nil
}

// GetByUser retrieves the profile owned by userID.
func (s *ProfileStore) GetByUser(_ context.Context, userID string) (*domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byUser[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	profile := s.profiles[id]
	return &profile, nil
}

// List returns all profiles.
func (s *ProfileStore) List(_ context.Context) ([]domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Profile, 0, len(s.profiles))
	for _, profile := range s.profiles {
		result = append(result, profile)
	}
	return result, nil
}
