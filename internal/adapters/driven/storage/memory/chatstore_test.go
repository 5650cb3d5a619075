package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matcha-labs/matcha-mcp/internal/core/domain"
)

func testWindow(id string) domain.ChatWindow {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return domain.ChatWindow{
		ID:        id,
		BrandID:   "brand-1",
		CreatorID: "creator-1",
		RequestID: "request-1",
		CreatedAt: created,
		ExpiresAt: created.Add(48 * time.Hour),
		Status:    domain.ChatActive,
	}
}

func TestChatStore_SaveAndGetWindow(t *testing.T) {
	store := NewChatStore()
	ctx := context.Background()

	require.NoError(t, store.SaveWindow(ctx, testWindow("chat-1")))

	got, err := store.GetWindow(ctx, "chat-1")
	require.NoError(t, err)
	assert.Equal(t, "brand-1", got.BrandID)

	_, err = store.GetWindow(ctx, "chat-missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChatStore_ActiveWindow(t *testing.T) {
	store := NewChatStore()
	ctx := context.Background()

	expired := testWindow("chat-1")
	expired.Status = domain.ChatExpired
	require.NoError(t, store.SaveWindow(ctx, expired))

	_, err := store.ActiveWindow(ctx, "brand-1", "creator-1", "request-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, store.SaveWindow(ctx, testWindow("chat-2")))

	got, err := store.ActiveWindow(ctx, "brand-1", "creator-1", "request-1")
	require.NoError(t, err)
	assert.Equal(t, "chat-2", got.ID)

	_, err = store.ActiveWindow(ctx, "brand-1", "creator-1", "request-other")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChatStore_ListWindows(t *testing.T) {
	store := NewChatStore()
	ctx := context.Background()

	require.NoError(t, store.SaveWindow(ctx, testWindow("chat-1")))
	other := testWindow("chat-2")
	other.BrandID = "brand-2"
	other.CreatorID = "creator-2"
	require.NoError(t, store.SaveWindow(ctx, other))

	mine, err := store.ListWindows(ctx, "creator-1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	all, err := store.ListWindows(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestChatStore_AppendMessage_AssignsSeqPerWindow(t *testing.T) {
	store := NewChatStore()
	ctx := context.Background()

	require.NoError(t, store.SaveWindow(ctx, testWindow("chat-1")))
	other := testWindow("chat-2")
	other.RequestID = "request-2"
	require.NoError(t, store.SaveWindow(ctx, other))

	at := time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)
	msg := func(chatID, id string) domain.Message {
		return domain.Message{ID: id, ChatID: chatID, SenderID: "brand-1", Content: "hi", SentAt: at}
	}

	first, err := store.AppendMessage(ctx, msg("chat-1", "msg-1"))
	require.NoError(t, err)
	second, err := store.AppendMessage(ctx, msg("chat-1", "msg-2"))
	require.NoError(t, err)
	elsewhere, err := store.AppendMessage(ctx, msg("chat-2", "msg-3"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.Seq)
	assert.Equal(t, int64(2), second.Seq)
	assert.Equal(t, int64(1), elsewhere.Seq)
}

func TestChatStore_AppendMessage_UnknownWindow(t *testing.T) {
	store := NewChatStore()

	_, err := store.AppendMessage(context.Background(), domain.Message{ID: "msg-1", ChatID: "chat-missing"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChatStore_ListMessages_OrderedBySentAtThenSeq(t *testing.T) {
	store := NewChatStore()
	ctx := context.Background()

	require.NoError(t, store.SaveWindow(ctx, testWindow("chat-1")))

	early := time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)
	late := early.Add(time.Minute)

	// Appended out of wall-clock order; SentAt wins, Seq breaks ties.
	_, err := store.AppendMessage(ctx, domain.Message{ID: "msg-1", ChatID: "chat-1", SenderID: "a", Content: "x", SentAt: late})
	require.NoError(t, err)
	_, err = store.AppendMessage(ctx, domain.Message{ID: "msg-2", ChatID: "chat-1", SenderID: "a", Content: "x", SentAt: early})
	require.NoError(t, err)
	_, err = store.AppendMessage(ctx, domain.Message{ID: "msg-3", ChatID: "chat-1", SenderID: "a", Content: "x", SentAt: early})
	require.NoError(t, err)

	msgs, err := store.ListMessages(ctx, "chat-1")
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "msg-2", msgs[0].ID)
	assert.Equal(t, "msg-3", msgs[1].ID)
	assert.Equal(t, "msg-1", msgs[2].ID)
}

func TestChatStore_CountMessages(t *testing.T) {
	store := NewChatStore()
	ctx := context.Background()

	require.NoError(t, store.SaveWindow(ctx, testWindow("chat-1")))

	base := time.Date(2026, 3, 1, 13, 0, 0, 0, time.UTC)
	save := func(id, sender string, at time.Time) {
		_, err := store.AppendMessage(ctx, domain.Message{ID: id, ChatID: "chat-1", SenderID: sender, Content: "x", SentAt: at})
		require.NoError(t, err)
	}
	save("msg-1", "brand-1", base)
	save("msg-2", "brand-1", base.Add(time.Hour))
	save("msg-3", "creator-1", base.Add(time.Hour))

	count, err := store.CountMessages(ctx, "brand-1", base.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// The boundary instant is inclusive.
	count, err = store.CountMessages(ctx, "brand-1", base)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
