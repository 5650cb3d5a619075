package memory

import (
	"context"
	"sync"

	"github.com/matcha-labs/matcha-mcp/internal/core/domain"
	"github.com/matcha-labs/matcha-mcp/internal/core/ports/driven"
)

// Ensure ContractStore implements the interface.
var _ driven.ContractStore = (*ContractStore)(nil)

// ContractStore is an in-memory implementation of driven.ContractStore.
type ContractStore struct {
	mu        sync.RWMutex
	contracts map[string]domain.Contract
	byDeal    map[string]string
}

// NewContractStore creates a new in-memory contract store.
func NewContractStore() *ContractStore {
	return &ContractStore{
		contracts: make(map[string]domain.Contract),
		byDeal:    make(map[string]string),
	}
}

// Save stores a contract record.
func (s *ContractStore) Save(_ context.Context, contract domain.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contracts[contract.ID] = contract
	s.byDeal[contract.DealID] = contract.ID
	return nil
}

// Get retrieves a contract by ID.
func (s *ContractStore) Get(_ context.Context, id string) (*domain.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	contract, ok := s.contracts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &contract, nil
}

// GetByDeal retrieves the contract rendered for a deal, if any.
func (s *ContractStore) GetByDeal(_ context.Context, dealID string) (*domain.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byDeal[dealID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	contract := s.contracts[id]
	return &contract, nil
}
