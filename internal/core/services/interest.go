package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/matcha-labs/matcha-mcp/internal/core/domain"
	"github.com/matcha-labs/matcha-mcp/internal/core/ports/driven"
	"github.com/matcha-labs/matcha-mcp/internal/core/ports/driving"
	"github.com/matcha-labs/matcha-mcp/internal/logger"
)

// Ensure InterestService implements the interface.
var _ driving.InterestService = (*InterestService)(nil)

// InterestService records creator interest in collaboration requests.
// At most one Interest exists per (creator, request) pair. Repeat
// expression is idempotent: the existing record is returned unchanged.
// Uniqueness under concurrent retries is guaranteed by the pair lock.
type InterestService struct {
	interests driven.InterestStore
	requests  driven.RequestStore
	clock     driven.Clock
	ids       driven.IDGenerator
	pairs     *keyMutex
}

// NewInterestService creates a new interest service.
func NewInterestService(
	interests driven.InterestStore,
	requests driven.RequestStore,
	clock driven.Clock,
	ids driven.IDGenerator,
) *InterestService {
	return &InterestService{
		interests: interests,
		requests:  requests,
		clock:     clock,
		ids:       ids,
		pairs:     newKeyMutex(),
	}
}

// Express records a creator's interest in a request.
func (s *InterestService) Express(ctx context.Context, creatorID, requestID string) (*domain.Interest, error) {
	if creatorID == "" || requestID == "" {
		return nil, fmt.Errorf("%w: creatorId and requestId are required", domain.ErrInvalidInput)
	}

	request, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != domain.RequestActive {
		return nil, fmt.Errorf("%w: request %s is %s", domain.ErrInvalidState, requestID, request.Status)
	}

	unlock := s.pairs.Lock(creatorID + "\x00" + requestID)
	defer unlock()

	existing, err := s.interests.GetByPair(ctx, creatorID, requestID)
	if err == nil {
		// Idempotent: repeat expression returns the record unchanged.
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("looking up interest: %w", err)
	}

	interest := domain.Interest{
		ID:        s.ids.NewID("interest"),
		CreatorID: creatorID,
		RequestID: requestID,
		Status:    domain.InterestPending,
		CreatedAt: s.clock.Now(),
	}
	if err := s.interests.Save(ctx, interest); err != nil {
		return nil, fmt.Errorf("saving interest: %w", err)
	}

	logger.Debug("Interest %s: creator %s -> request %s", interest.ID, creatorID, requestID)
	return &interest, nil
}
