package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/matcha-labs/matcha-mcp/internal/core/domain"
	"github.com/matcha-labs/matcha-mcp/internal/core/ports/driven"
	"github.com/matcha-labs/matcha-mcp/internal/core/ports/driving"
	"github.com/matcha-labs/matcha-mcp/internal/logger"
)

// Ensure RequestService implements the interface.
var _ driving.RequestService = (*RequestService)(nil)

// RequestService manages collaboration requests and owns their embeddings.
type RequestService struct {
	store    driven.RequestStore
	embedder driven.EmbeddingService
	clock    driven.Clock
	ids      driven.IDGenerator
	revision *Revision
}

// NewRequestService creates a new request service.
// The embedder is optional (can be nil).
func NewRequestService(
	store driven.RequestStore,
	embedder driven.EmbeddingService,
	clock driven.Clock,
	ids driven.IDGenerator,
	revision *Revision,
) *RequestService {
	return &RequestService{
		store:    store,
		embedder: embedder,
		clock:    clock,
		ids:      ids,
		revision: revision,
	}
}

// Create posts a new collaboration request.
func (s *RequestService) Create(ctx context.Context, in driving.NewRequest) (*domain.Request, error) {
	now := s.clock.Now()
	request := domain.Request{
		ID:           s.ids.NewID("request"),
		BrandID:      in.BrandID,
		Title:        in.Title,
		Description:  in.Description,
		BudgetMin:    in.BudgetMin,
		BudgetMax:    in.BudgetMax,
		Timeline:     in.Timeline,
		Deliverables: in.Deliverables,
		NicheTags:    in.NicheTags,
		Status:       domain.RequestActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := request.Validate(); err != nil {
		return nil, fmt.Errorf("%w: budgetMin must not exceed budgetMax", err)
	}

	if s.embedder != nil {
		vec, err := s.embedder.Embed(ctx, requestText(request))
		if err != nil {
			logger.Warn("Embedding failed, storing without vector: %v", err)
		} else {
			request.Embedding = vec
		}
	}

	if err := s.store.Save(ctx, request); err != nil {
		return nil, fmt.Errorf("saving request: %w", err)
	}
	s.revision.Bump()

	logger.Debug("Created request %s for brand %s", request.ID, request.BrandID)
	return &request, nil
}

// Get retrieves a request by ID.
func (s *RequestService) Get(ctx context.Context, id string) (*domain.Request, error) {
	return s.store.Get(ctx, id)
}

// Withdraw closes an active request. Only the owning brand may withdraw.
func (s *RequestService) Withdraw(ctx context.Context, id, brandID string) error {
	request, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if request.BrandID != brandID {
		return domain.ErrPermissionDenied
	}
	if request.Status != domain.RequestActive {
		return domain.ErrInvalidState
	}

	request.Status = domain.RequestClosed
	request.UpdatedAt = s.clock.Now()
	if err := s.store.Save(ctx, *request); err != nil {
		return fmt.Errorf("saving request: %w", err)
	}
	s.revision.Bump()
	return nil
}

// requestText builds the embedding input from the matchable request fields.
func requestText(r domain.Request) string {
	return r.Title + "\n" + r.Description + "\n" + strings.Join(r.NicheTags, " ")
}
