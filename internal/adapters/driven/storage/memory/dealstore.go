package memory

import (
	"context"
	"sync"

	"github.com/matcha-labs/matcha-mcp/internal/core/domain"
	"github.com/matcha-labs/matcha-mcp/internal/core/ports/driven"
)

// Ensure DealStore implements the interface.
var _ driven.DealStore = (*DealStore)(nil)

// DealStore is an in-memory implementation of driven.DealStore.
type DealStore struct {
	mu    sync.RWMutex
	deals map[string]domain.Deal
}

// NewDealStore creates a new in-memory deal store.
func NewDealStore() *DealStore {
	return &DealStore{deals: make(map[string]domain.Deal)}
}

// Save stores or updates a deal.
func (s *DealStore) Save(_ context.Context, deal domain.Deal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := deal
	stored.Confirmations = append([]string(nil), deal.Confirmations...)
	s.deals[deal.ID] = stored
	return nil
}

// Get retrieves a deal by ID.
func (s *DealStore) Get(_ context.Context, id string) (*domain.Deal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	deal, ok := s.deals[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	deal.Confirmations = append([]string(nil), deal.Confirmations...)
	return &deal, nil
}

// ListByParty returns deals where userID is the brand or the creator.
func (s *DealStore) ListByParty(_ context.Context, userID string) ([]domain.Deal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Deal
	for _, deal := range s.deals {
		if deal.Party(userID) {
			result = append(result, deal)
		}
	}
	return result, nil
}

// ListOpen returns deals still in proposed or pending state.
func (s *DealStore) ListOpen(_ context.Context) ([]domain.Deal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.Deal
	for _, deal := range s.deals {
		if deal.Status == domain.DealProposed || deal.Status == domain.DealPending {
			result = append(result, deal)
		}
	}
	return result, nil
}
