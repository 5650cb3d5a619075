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

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// ChatService manages the 48-hour negotiation windows. It exclusively
// owns window status transitions: active -> expired when the lifetime
// elapses (observed lazily on access), active -> closed when a party
// closes. There is no way back out of expired or closed.
type ChatService struct {
	store driven.ChatStore
	clock driven.Clock
	ids   driven.IDGenerator
	locks *keyMutex
}

// NewChatService creates a new chat service.
func NewChatService(store driven.ChatStore, clock driven.Clock, ids driven.IDGenerator) *ChatService {
	return &ChatService{
		store: store,
		clock: clock,
		ids:   ids,
		locks: newKeyMutex(),
	}
}

// Open creates the ephemeral window for a (brand, creator, request)
// triple. The expiry is exactly creation time plus domain.ChatWindowTTL.
func (s *ChatService) Open(ctx context.Context, brandID, creatorID, requestID string) (*domain.ChatWindow, error) {
	if brandID == "" || creatorID == "" || requestID == "" {
		return nil, fmt.Errorf("%w: brandId, creatorId and requestId are required", domain.ErrInvalidInput)
	}

	unlock := s.locks.Lock(brandID + "\x00" + creatorID + "\x00" + requestID)
	defer unlock()

	existing, err := s.store.ActiveWindow(ctx, brandID, creatorID, requestID)
	if err == nil {
		// An active window may itself be past its expiry; observe that
		// before deciding the triple is occupied.
		if !existing.ExpiredAt(s.clock.Now()) {
			return nil, fmt.Errorf("%w: active chat window %s", domain.ErrAlreadyExists, existing.ID)
		}
		existing.Status = domain.ChatExpired
		if err := s.store.SaveWindow(ctx, *existing); err != nil {
			return nil, fmt.Errorf("expiring window: %w", err)
		}
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("looking up window: %w", err)
	}

	now := s.clock.Now()
	window := domain.ChatWindow{
		ID:        s.ids.NewID("chat"),
		BrandID:   brandID,
		CreatorID: creatorID,
		RequestID: requestID,
		CreatedAt: now,
		ExpiresAt: now.Add(domain.ChatWindowTTL),
		Status:    domain.ChatActive,
	}
	if err := s.store.SaveWindow(ctx, window); err != nil {
		return nil, fmt.Errorf("saving window: %w", err)
	}

	logger.Debug("Opened chat %s (%s <-> %s, request %s)", window.ID, brandID, creatorID, requestID)
	return &window, nil
}

// Send appends a message to an active window.
func (s *ChatService) Send(ctx context.Context, chatID, senderID, content string) (*domain.Message, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: message content must not be empty", domain.ErrInvalidInput)
	}

	unlock := s.locks.Lock(chatID)
	defer unlock()

	window, err := s.observe(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if window.Status != domain.ChatActive {
		return nil, fmt.Errorf("%w: chat window is %s", domain.ErrInvalidState, window.Status)
	}
	if !window.Party(senderID) {
		return nil, fmt.Errorf("%w: %s is not a party to chat %s", domain.ErrPermissionDenied, senderID, chatID)
	}

	msg := domain.Message{
		ID:       s.ids.NewID("msg"),
		ChatID:   chatID,
		SenderID: senderID,
		Content:  content,
		SentAt:   s.clock.Now(),
	}
	stored, err := s.store.AppendMessage(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("appending message: %w", err)
	}
	return &stored, nil
}

// Close closes an active window. Either party may close.
func (s *ChatService) Close(ctx context.Context, chatID, userID string) (*domain.ChatWindow, error) {
	unlock := s.locks.Lock(chatID)
	defer unlock()

	window, err := s.observe(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !window.Party(userID) {
		return nil, fmt.Errorf("%w: %s is not a party to chat %s", domain.ErrPermissionDenied, userID, chatID)
	}
	if window.Status != domain.ChatActive {
		return nil, fmt.Errorf("%w: chat window is %s", domain.ErrInvalidState, window.Status)
	}

	window.Status = domain.ChatClosed
	if err := s.store.SaveWindow(ctx, *window); err != nil {
		return nil, fmt.Errorf("saving window: %w", err)
	}
	return window, nil
}

// History returns a window's messages in log order.
func (s *ChatService) History(ctx context.Context, chatID string) ([]domain.Message, error) {
	if _, err := s.store.GetWindow(ctx, chatID); err != nil {
		return nil, err
	}
	return s.store.ListMessages(ctx, chatID)
}

// SweepExpired transitions every active window past its expiry. Expiry is
// already observed lazily on access; the sweep only keeps analytics
// projections current. Returns the number of windows transitioned.
func (s *ChatService) SweepExpired(ctx context.Context) (int, error) {
	windows, err := s.store.ListWindows(ctx, "")
	if err != nil {
		return 0, fmt.Errorf("listing windows: %w", err)
	}
	swept := 0
	for i := range windows {
		w := windows[i]
		if w.Status != domain.ChatActive || !w.ExpiredAt(s.clock.Now()) {
			continue
		}
		unlock := s.locks.Lock(w.ID)
		current, err := s.store.GetWindow(ctx, w.ID)
		if err == nil && current.Status == domain.ChatActive && current.ExpiredAt(s.clock.Now()) {
			current.Status = domain.ChatExpired
			if err := s.store.SaveWindow(ctx, *current); err == nil {
				swept++
			}
		}
		unlock()
	}
	return swept, nil
}

// observe loads a window and applies lazy expiry: an active window past
// its ExpiresAt is transitioned to expired before being returned.
// Caller must hold the window lock.
func (s *ChatService) observe(ctx context.Context, chatID string) (*domain.ChatWindow, error) {
	window, err := s.store.GetWindow(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if window.Status == domain.ChatActive && window.ExpiredAt(s.clock.Now()) {
		window.Status = domain.ChatExpired
		if err := s.store.SaveWindow(ctx, *window); err != nil {
			return nil, fmt.Errorf("expiring window: %w", err)
		}
		logger.Debug("Chat %s expired lazily", chatID)
	}
	return window, nil
}
