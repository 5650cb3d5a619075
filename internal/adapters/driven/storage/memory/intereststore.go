package memory

import (
	"context"
	"sync"

	"github.com/matcha-labs/matcha-mcp/internal/core/domain"
	"github.com/matcha-labs/matcha-mcp/internal/core/ports/driven"
)

// Ensure InterestStore implements the interface.
var _ driven.InterestStore = (*InterestStore)(nil)

// InterestStore is an in-memory implementation of driven.InterestStore.
type InterestStore struct {
	mu        sync.RWMutex
	interests map[string]domain.Interest
	byPair    map[string]string
}

// NewInterestStore creates a new in-memory interest store.
func NewInterestStore() *InterestStore {
	return &InterestStore{
		interests: make(map[string]domain.Interest),
		byPair:    make(map[string]string),
	}
}

func pairKey(creatorID, requestID string) string {
	return creatorID + "\x00" + requestID
}

// Save stores an interest.
func (s *InterestStore) Save(_ context.Context, interest domain.Interest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interests[interest.ID] = interest
	s.byPair[pairKey(interest.CreatorID, interest.RequestID)] = interest.ID
	return nil
}

// Get retrieves an interest by ID.
func (s *InterestStore) Get(_ context.Context, id string) (*domain.Interest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	interest, ok := s.interests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &interest, nil
}

// GetByPair retrieves the unique interest for a (creatorID, requestID) pair.
func (s *InterestStore) GetByPair(_ context.Context, creatorID, requestID string) (*domain.Interest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byPair[pairKey(creatorID, requestID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	interest := s.interests[id]
	return &interest, nil
}

// ListByCreator returns all interests expressed by creatorID.
func (s *InterestStore) ListByCreator(_ context.Context, creatorID string) ([]domain.Interest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Interest
	for _, interest := range s.interests {
		if interest.CreatorID == creatorID {
			result = append(result, interest)
		}
	}
	return result, nil
}

// ListByRequest returns all interests targeting requestID.
func (s *InterestStore) ListByRequest(_ context.Context, requestID string) ([]domain.Interest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Interest
	for _, interest := range s.interests {
		if interest.RequestID == requestID {
			result = append(result, interest)
		}
	}
	return result, nil
}
