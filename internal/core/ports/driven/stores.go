package driven

import (
	"context"
	"time"

	"github.com/matcha-labs/matcha-mcp/internal/core/domain"
)

// ProfileStore persists creator profiles.
type ProfileStore interface {
	// Save stores or updates a profile.
	Save(ctx context.Context, profile domain.Profile) error

	// Get retrieves a profile by ID.
	Get(ctx context.Context, id string) (*domain.Profile, error)

	// GetByUser retrieves the profile owned by userID.
	GetByUser(ctx context.Context, userID string) (*domain.Profile, error)

	// List returns all profiles.
	List(ctx context.Context) ([]domain.Profile, error)
}

// RequestStore persists collaboration requests.
type RequestStore interface {
	// Save stores or updates a request.
	Save(ctx context.Context, request domain.Request) error

	// Get retrieves a request by ID.
	Get(ctx context.Context, id string) (*domain.Request, error)

	// ListByBrand returns all requests posted by brandID.
	ListByBrand(ctx context.Context, brandID string) ([]domain.Request, error)

	// ListActive returns all requests still open for matching.
	ListActive(ctx context.Context) ([]domain.Request, error)
}

// InterestStore persists expressed interests.
type InterestStore interface {
	// Save stores an interest.
	Save(ctx context.Context, interest domain.Interest) error

	// Get retrieves an interest by ID.
	Get(ctx context.Context, id string) (*domain.Interest, error)

	// GetByPair retrieves the unique interest for a (creatorID, requestID) pair.
	GetByPair(ctx context.Context, creatorID, requestID string) (*domain.Interest, error)

	// ListByCreator returns all interests expressed by creatorID.
	ListByCreator(ctx context.Context, creatorID string) ([]domain.Interest, error)

	// ListByRequest returns all interests targeting requestID.
	ListByRequest(ctx context.Context, requestID string) ([]domain.Interest, error)
}

// ChatStore persists chat windows and their append-only message logs.
type ChatStore interface {
	// SaveWindow stores or updates a chat window.
	SaveWindow(ctx context.Context, window domain.ChatWindow) error

	// GetWindow retrieves a window by ID.
	GetWindow(ctx context.Context, id string) (*domain.ChatWindow, error)

	// ActiveWindow retrieves the active window for a triple, or
	// domain.ErrNotFound when none exists.
	ActiveWindow(ctx context.Context, brandID, creatorID, requestID string) (*domain.ChatWindow, error)

	// ListWindows returns all windows involving userID as either party.
	// An empty userID returns every window.
	ListWindows(ctx context.Context, userID string) ([]domain.ChatWindow, error)

	// AppendMessage appends a message to its window's log and assigns the
	// per-window sequence number.
	AppendMessage(ctx context.Context, msg domain.Message) (domain.Message, error)

	// ListMessages returns a window's messages ordered by SentAt then Seq.
	ListMessages(ctx context.Context, chatID string) ([]domain.Message, error)

	// CountMessages counts messages sent by userID since the given time.
	CountMessages(ctx context.Context, userID string, since time.Time) (int, error)
}

// DealStore persists deals.
type DealStore interface {
	// Save stores or updates a deal.
	Save(ctx context.Context, deal domain.Deal) error

	// Get retrieves a deal by ID.
	Get(ctx context.Context, id string) (*domain.Deal, error)

	// ListByParty returns deals where userID is the brand or the creator.
	ListByParty(ctx context.Context, userID string) ([]domain.Deal, error)

	// ListOpen returns deals still in proposed or pending state.
	ListOpen(ctx context.Context) ([]domain.Deal, error)
}

// ContractStore persists rendered contract records.
type ContractStore interface {
	// Save stores a contract record.
	Save(ctx context.Context, contract domain.Contract) error

	// Get retrieves a contract by ID.
	Get(ctx context.Context, id string) (*domain.Contract, error)

	// GetByDeal retrieves the contract rendered for a deal, if any.
	GetByDeal(ctx context.Context, dealID string) (*domain.Contract, error)
}
