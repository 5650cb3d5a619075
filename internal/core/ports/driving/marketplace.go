package driving

import (
	"context"

	"github.com/matcha-labs/matcha-mcp/internal/core/domain"
)

// NewProfile carries the caller-supplied fields for profile registration.
type NewProfile struct {
	UserID    string
	Bio       string
	NicheTags []string
	Location  string
	Languages []string
}

// ProfileService manages creator profiles.
type ProfileService interface {
	// Create registers a new profile and computes its embedding.
	Create(ctx context.Context, in NewProfile) (*domain.Profile, error)

	// Get retrieves a profile by ID.
	Get(ctx context.Context, id string) (*domain.Profile, error)

	// UpdateBio replaces the bio and niche tags, recomputing the embedding.
	UpdateBio(ctx context.Context, id, bio string, nicheTags []string) (*domain.Profile, error)

	// List returns all profiles.
	List(ctx context.Context) ([]domain.Profile, error)
}

// NewRequest carries the caller-supplied fields for a collaboration request.
type NewRequest struct {
	BrandID      string
	Title        string
	Description  string
	BudgetMin    float64
	BudgetMax    float64
	Timeline     string
	Deliverables []string
	NicheTags    []string
}

// RequestService manages collaboration requests.
type RequestService interface {
	// Create posts a new request and computes its embedding.
	// Fails with domain.ErrInvalidInput when BudgetMin > BudgetMax.
	Create(ctx context.Context, in NewRequest) (*domain.Request, error)

	// Get retrieves a request by ID.
	Get(ctx context.Context, id string) (*domain.Request, error)

	// Withdraw closes an active request. Brand only.
	Withdraw(ctx context.Context, id, brandID string) error
}

// MatchingService ranks creators against a request.
type MatchingService interface {
	// FindMatches returns eligible creators scoring at least minScore,
	// sorted descending by score with ties broken by profile recency.
	FindMatches(ctx context.Context, requestID string, minScore float64, filters *domain.MatchFilters) ([]domain.MatchResult, error)
}

// InterestService records creator interest in requests.
type InterestService interface {
	// Express records interest. Expressing interest twice for the same
	// pair is idempotent and returns the existing record unchanged.
	Express(ctx context.Context, creatorID, requestID string) (*domain.Interest, error)
}

// ChatService manages ephemeral negotiation windows.
type ChatService interface {
	// Open creates the 48-hour window for a triple. Fails with
	// domain.ErrAlreadyExists if an active window exists.
	Open(ctx context.Context, brandID, creatorID, requestID string) (*domain.ChatWindow, error)

	// Send appends a message to an active window.
	Send(ctx context.Context, chatID, senderID, content string) (*domain.Message, error)

	// Close closes an active window. Either party may close.
	Close(ctx context.Context, chatID, userID string) (*domain.ChatWindow, error)

	// History returns a window's messages in log order.
	History(ctx context.Context, chatID string) ([]domain.Message, error)
}

// DealService runs the mutual confirmation protocol.
type DealService interface {
	// Propose creates a deal in the proposed state for a request's parties.
	Propose(ctx context.Context, requestID, brandID, creatorID string, terms domain.DealTerms) (*domain.Deal, error)

	// Confirm records one party's confirmation of the terms. See the
	// Deal state machine for the full transition rules.
	Confirm(ctx context.Context, dealID, userID string, terms domain.DealTerms) (*domain.Deal, error)

	// Get retrieves a deal by ID.
	Get(ctx context.Context, id string) (*domain.Deal, error)
}

// InsightService produces ROI narratives for a creator-request pairing.
type InsightService interface {
	// AnalyseROI generates a narrative explaining the match. Requires a
	// configured text generator.
	AnalyseROI(ctx context.Context, creatorID, requestID string, matchScore float64) (*domain.ROIAnalysis, error)
}

// ContractService renders contracts for finalized deals.
type ContractService interface {
	// Generate renders a contract for a finalized deal. Fails with
	// domain.ErrInvalidState for any other deal state.
	Generate(ctx context.Context, dealID, language string) (*domain.Contract, error)
}

// AnalyticsService is a read-only projection over the entity stores.
type AnalyticsService interface {
	// Snapshot computes counts and trends for a user over a time range
	// such as "7d" or "30d" (empty means 30d).
	Snapshot(ctx context.Context, userID string, entityType domain.EntityType, timeRange string) (*domain.AnalyticsSnapshot, error)
}
