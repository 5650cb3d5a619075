package domain

import "time"

// ChatWindowTTL is the fixed lifetime of a chat window from creation.
const ChatWindowTTL = 48 * time.Hour

// ChatStatus is the lifecycle state of a chat window.
type ChatStatus string

// Chat window statuses. There is no transition out of expired or closed.
const (
	ChatActive  ChatStatus = "active"
	ChatExpired ChatStatus = "expired"
	ChatClosed  ChatStatus = "closed"
)

// ChatWindow is a time-bounded, two-party ephemeral messaging session tied
// to one collaboration request. Exactly one active window may exist per
// (BrandID, CreatorID, RequestID) triple.
type ChatWindow struct {
	// ID is the unique identifier for the window.
	ID string

	// BrandID and CreatorID are the two parties. Only they may send
	// messages or close the window.
	BrandID   string
	CreatorID string

	// RequestID is the collaboration request the negotiation concerns.
	RequestID string

	// CreatedAt is when the window was opened.
	CreatedAt time.Time

	// ExpiresAt is exactly CreatedAt + ChatWindowTTL.
	ExpiresAt time.Time

	// Status is the window lifecycle state. Expiry is observed lazily:
	// any access past ExpiresAt transitions an active window to expired.
	Status ChatStatus
}

// Party reports whether userID is the brand or the creator of the window.
func (w *ChatWindow) Party(userID string) bool {
	return userID == w.BrandID || userID == w.CreatorID
}

// ExpiredAt reports whether the window's lifetime has elapsed at the given time.
func (w *ChatWindow) ExpiredAt(now time.Time) bool {
	return now.After(w.ExpiresAt)
}

// Message is one entry in a chat window's append-only log. Messages are
// never edited or deleted, and are ordered by SentAt then Seq.
type Message struct {
	// ID is the unique identifier for the message.
	ID string

	// ChatID is the window the message belongs to.
	ChatID string

	// SenderID is the sending party's user ID.
	SenderID string

	// Content is the message body. Never empty.
	Content string

	// SentAt is when the message was accepted.
	SentAt time.Time

	// Seq is the per-window insertion sequence, breaking SentAt ties.
	Seq int64
}
