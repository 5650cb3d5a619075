package memory

import (
	"context"
	"sync"

	"github.com/matcha-labs/matcha-mcp/internal/core/domain"
	"github.com/matcha-labs/matcha-mcp/internal/core/ports/driven"
)

// Ensure RequestStore implements the interface.
var _ driven.RequestStore = (*RequestStore)(nil)

// RequestStore is an in-memory implementation of driven.RequestStore.
type RequestStore struct {
	mu       sync.RWMutex
	requests map[string]domain.Request
}

// NewRequestStore creates a new in-memory request store.
func NewRequestStore() *RequestStore {
	return &RequestStore{requests: make(map[string]domain.Request)}
}

// Save stores or updates a request.
func (s *RequestStore) Save(_ context.Context, request domain.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[request.ID] = request
	return nil
}

// Get retrieves a request by ID.
func (s *RequestStore) Get(_ context.Context, id string) (*domain.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	request, ok := s.requests[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &request, nil
}

// ListByBrand returns all requests posted by brandID.
func (s *RequestStore) ListByBrand(_ context.Context, brandID string) ([]domain.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Request
	for _, request := range s.requests {
		if request.BrandID == brandID {
			result = append(result, request)
		}
	}
	return result, nil
}

// ListActive returns all requests still open for matching.
func (s *RequestStore) ListActive(_ context.Context) ([]domain.Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Request
	for _, request := range s.requests {
		if request.Status == domain.RequestActive {
			result = append(result, request)
		}
	}
	return result, nil
}
