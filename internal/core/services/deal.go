package services

import (
	"context"
	"fmt"
	"time"

	"github.com/matcha-labs/matcha-mcp/internal/core/domain"
	"github.com/matcha-labs/matcha-mcp/internal/core/ports/driven"
	"github.com/matcha-labs/matcha-mcp/internal/core/ports/driving"
	"github.com/matcha-labs/matcha-mcp/internal/logger"
)

// Ensure DealService implements the interface.
var _ driving.DealService = (*DealService)(nil)

// DefaultDealTimeout expires unconfirmed deals after a week.
const DefaultDealTimeout = 7 * 24 * time.Hour

// DealService runs the mutual confirmation protocol:
//
//	proposed -> pending_mutual_confirmation -> finalized
//
// with proposed|pending -> expired on timeout. The finalized event is
// emitted under the deal's key lock, in the same critical section as the
// finalizing write, so it fires exactly once and only after both
// confirmations are recorded.
type DealService struct {
	deals    driven.DealStore
	requests driven.RequestStore
	events   driven.EventSink
	clock    driven.Clock
	ids      driven.IDGenerator
	revision *Revision
	timeout  time.Duration
	locks    *keyMutex
}

// NewDealService creates a new deal service.
// The event sink is optional (can be nil).
func NewDealService(
	deals driven.DealStore,
	requests driven.RequestStore,
	events driven.EventSink,
	clock driven.Clock,
	ids driven.IDGenerator,
	revision *Revision,
) *DealService {
	return &DealService{
		deals:    deals,
		requests: requests,
		events:   events,
		clock:    clock,
		ids:      ids,
		revision: revision,
		timeout:  DefaultDealTimeout,
		locks:    newKeyMutex(),
	}
}

// SetTimeout overrides the confirmation timeout.
func (s *DealService) SetTimeout(d time.Duration) {
	if d > 0 {
		s.timeout = d
	}
}

// Propose creates a deal in the proposed state.
func (s *DealService) Propose(
	ctx context.Context, requestID, brandID, creatorID string, terms domain.DealTerms,
) (*domain.Deal, error) {
	request, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != domain.RequestActive {
		return nil, fmt.Errorf("%w: request %s is %s", domain.ErrInvalidState, requestID, request.Status)
	}
	if request.BrandID != brandID {
		return nil, fmt.Errorf("%w: %s does not own request %s", domain.ErrPermissionDenied, brandID, requestID)
	}

	deal := domain.Deal{
		ID:        s.ids.NewID("deal"),
		RequestID: requestID,
		BrandID:   brandID,
		CreatorID: creatorID,
		Terms:     terms,
		Status:    domain.DealProposed,
		CreatedAt: s.clock.Now(),
	}
	if err := s.deals.Save(ctx, deal); err != nil {
		return nil, fmt.Errorf("saving deal: %w", err)
	}

	logger.Debug("Proposed deal %s on request %s", deal.ID, requestID)
	return &deal, nil
}

// Confirm records one party's confirmation of the terms.
func (s *DealService) Confirm(
	ctx context.Context, dealID, userID string, terms domain.DealTerms,
) (*domain.Deal, error) {
	unlock := s.locks.Lock(dealID)
	defer unlock()

	deal, err := s.deals.Get(ctx, dealID)
	if err != nil {
		return nil, err
	}

	// Party check first: a non-party must never alter confirmations.
	if !deal.Party(userID) {
		return nil, fmt.Errorf("%w: %s is not a party to deal %s", domain.ErrPermissionDenied, userID, dealID)
	}

	if deal.Status == domain.DealFinal {
		// Confirming an already finalized deal is a no-op.
		return deal, nil
	}
	if s.expireLocked(ctx, deal) {
		return nil, fmt.Errorf("%w: deal %s has expired", domain.ErrInvalidState, dealID)
	}

	switch deal.Status {
	case domain.DealProposed:
		// First confirmation: snapshot the terms.
		deal.Terms = terms
		deal.Confirmations = []string{userID}
		deal.Status = domain.DealPending

	case domain.DealPending:
		if !deal.Terms.Equal(terms) {
			// Reject on mismatch; the first party's snapshot stands and
			// the deal stays pending until terms are re-proposed.
			return nil, fmt.Errorf("%w: submitted terms differ from the confirmed snapshot", domain.ErrTermsMismatch)
		}
		if deal.ConfirmedBy(userID) {
			// Same party re-confirming identical terms is a no-op.
			return deal, nil
		}
		deal.Confirmations = append(deal.Confirmations, userID)
		deal.Status = domain.DealFinal
		deal.FinalizedAt = s.clock.Now()

	default:
		return nil, fmt.Errorf("%w: deal %s is %s", domain.ErrInvalidState, dealID, deal.Status)
	}

	if err := s.deals.Save(ctx, *deal); err != nil {
		return nil, fmt.Errorf("saving deal: %w", err)
	}

	if deal.Status == domain.DealFinal {
		s.finalize(ctx, deal)
	}
	return deal, nil
}

// Get retrieves a deal, applying lazy expiry.
func (s *DealService) Get(ctx context.Context, id string) (*domain.Deal, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	deal, err := s.deals.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.expireLocked(ctx, deal)
	return deal, nil
}

// SweepExpired transitions timed-out open deals to expired. Returns the
// number of deals transitioned.
func (s *DealService) SweepExpired(ctx context.Context) (int, error) {
	open, err := s.deals.ListOpen(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing open deals: %w", err)
	}
	swept := 0
	for i := range open {
		unlock := s.locks.Lock(open[i].ID)
		deal, err := s.deals.Get(ctx, open[i].ID)
		if err == nil && s.expireLocked(ctx, deal) {
			swept++
		}
		unlock()
	}
	return swept, nil
}

// finalize closes the parent request and emits the finalized event.
// Called with the deal lock held, immediately after the finalizing write.
func (s *DealService) finalize(ctx context.Context, deal *domain.Deal) {
	request, err := s.requests.Get(ctx, deal.RequestID)
	if err == nil && request.Status == domain.RequestActive {
		request.Status = domain.RequestClosed
		request.UpdatedAt = s.clock.Now()
		if err := s.requests.Save(ctx, *request); err != nil {
			logger.Warn("Closing request %s after finalization: %v", deal.RequestID, err)
		} else {
			s.revision.Bump()
		}
	}

	logger.Info("Deal %s finalized", deal.ID)
	if s.events != nil {
		s.events.DealFinalized(ctx, domain.DealFinalized{
			DealID:      deal.ID,
			RequestID:   deal.RequestID,
			BrandID:     deal.BrandID,
			CreatorID:   deal.CreatorID,
			Terms:       deal.Terms,
			FinalizedAt: deal.FinalizedAt,
		})
	}
}

// expireLocked applies the confirmation timeout to an open deal.
// Caller must hold the deal lock. Reports whether the deal is expired.
func (s *DealService) expireLocked(ctx context.Context, deal *domain.Deal) bool {
	if deal.Status == domain.DealExpired {
		return true
	}
	if deal.Status != domain.DealProposed && deal.Status != domain.DealPending {
		return false
	}
	if s.clock.Now().Sub(deal.CreatedAt) <= s.timeout {
		return false
	}
	deal.Status = domain.DealExpired
	if err := s.deals.Save(ctx, *deal); err != nil {
		logger.Warn("Expiring deal %s: %v", deal.ID, err)
	}
	return true
}
