package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/matcha-labs/matcha-mcp/internal/core/domain"
	"github.com/matcha-labs/matcha-mcp/internal/core/ports/driven"
)

// Ensure ChatStore implements the interface.
var _ driven.ChatStore = (*ChatStore)(nil)

// ChatStore is an in-memory implementation of driven.ChatStore.
// Message logs are append-only; sequence numbers are assigned per window.
type ChatStore struct {
	mu       sync.RWMutex
	windows  map[string]domain.ChatWindow
	messages map[string][]domain.Message
	seq      map[string]int64
}

// NewChatStore creates a new in-memory chat store.
func NewChatStore() *ChatStore {
	return &ChatStore{
		windows:  make(map[string]domain.ChatWindow),
		messages: make(map[string][]domain.Message),
		seq:      make(map[string]int64),
	}
}

// SaveWindow stores or updates a chat window.
func (s *ChatStore) SaveWindow(_ context.Context, window domain.ChatWindow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.windows[window.ID] = window
	return nil
}

// GetWindow retrieves a window by ID.
func (s *ChatStore) GetWindow(_ context.Context, id string) (*domain.ChatWindow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	window, ok := s.windows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &window, nil
}

// ActiveWindow retrieves the active window for a triple.
func (s *ChatStore) ActiveWindow(_ context.Context, brandID, creatorID, requestID string) (*domain.ChatWindow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, window := range s.windows {
		if window.Status == domain.ChatActive &&
			window.BrandID == brandID &&
			window.CreatorID == creatorID &&
			window.RequestID == requestID {
			w := window
			return &w, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ListWindows returns all windows involving userID as either party.
// An empty userID returns every window.
func (s *ChatStore) ListWindows(_ context.Context, userID string) ([]domain.ChatWindow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []domain.ChatWindow
	for _, window := range s.windows {
		if userID == "" || window.Party(userID) {
			result = append(result, window)
		}
	}
	return result, nil
}

// AppendMessage appends a message and assigns its sequence number.
func (s *ChatStore) AppendMessage(_ context.Context, msg domain.Message) (domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.windows[msg.ChatID]; !ok {
		return domain.Message{}, domain.ErrNotFound
	}
	s.seq[msg.ChatID]++
	msg.Seq = s.seq[msg.ChatID]
	s.messages[msg.ChatID] = append(s.messages[msg.ChatID], msg)
	return msg, nil
}

// ListMessages returns a window's messages ordered by SentAt then Seq.
func (s *ChatStore) ListMessages(_ context.Context, chatID string) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := make([]domain.Message, len(s.messages[chatID]))
	copy(msgs, s.messages[chatID])
	sort.SliceStable(msgs, func(i, j int) bool {
		if !msgs[i].SentAt.Equal(msgs[j].SentAt) {
			return msgs[i].SentAt.Before(msgs[j].SentAt)
		}
		return msgs[i].Seq < msgs[j].Seq
	})
	return msgs, nil
}

// CountMessages counts messages sent by userID since the given time.
func (s *ChatStore) CountMessages(_ context.Context, userID string, since time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, log := range s.messages {
		for _, msg := range log {
			if msg.SenderID == userID && !msg.SentAt.Before(since) {
				count++
			}
		}
	}
	return count, nil
}
