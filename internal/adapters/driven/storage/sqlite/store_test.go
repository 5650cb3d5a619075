package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matcha-labs/matcha-mcp/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "matcha-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

func testProfile(id, userID string) domain.Profile {
	now := time.Now().UTC().Truncate(time.Second)
	return domain.Profile{
		ID:        id,
		UserID:    userID,
		Bio:       "Tech reviewer covering consumer gadgets",
		NicheTags: []string{"tech", "gadgets"},
		Location:  "Seoul",
		Languages: []string{"ko", "en"},
		Embedding: []float32{0.1, 0.2, 0.3},
		Status:    domain.ProfileActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func testRequest(id, brandID string) domain.Request {
	now := time.Now().UTC().Truncate(time.Second)
	return domain.Request{
		ID:           id,
		BrandID:      brandID,
		Title:        "Smartwatch launch campaign",
		Description:  "Looking for tech creators to cover our new smartwatch",
		BudgetMin:    1000,
		BudgetMax:    5000,
		Timeline:     "2 weeks",
		Deliverables: []string{"1 video", "2 posts"},
		NicheTags:    []string{"tech"},
		Embedding:    []float32{0.4, 0.5, 0.6},
		Status:       domain.RequestActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ==================== Store Creation and Initialization Tests ====================

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_Success(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "matcha-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	dbPath := filepath.Join(tempDir, "marketplace.db")
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)

	err = store.db.Ping()
	assert.NoError(t, err)
}

func TestNewStore_Migrations(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	var count int
	err := store.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Greater(t, count, 0, "should have at least one migration")

	tables := []string{
		"profiles",
		"requests",
		"interests",
		"chat_windows",
		"messages",
		"deals",
		"contracts",
	}

	for _, table := range tables {
		var tableExists int
		err := store.db.QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&tableExists)
		require.NoError(t, err)
		assert.Equal(t, 1, tableExists, "table %s should exist", table)
	}
}

func TestNewStore_MigrationsIdempotent(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "matcha-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening must not re-run applied migrations.
	store, err = NewStore(tempDir)
	require.NoError(t, err)
	defer store.Close()
}

// ==================== Profile Store Tests ====================

func TestProfileStore_SaveAndGet(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	profiles := store.ProfileStore()

	profile := testProfile("prof_1", "creator_1")
	require.NoError(t, profiles.Save(ctx, profile))

	got, err := profiles.Get(ctx, "prof_1")
	require.NoError(t, err)
	assert.Equal(t, profile.UserID, got.UserID)
	assert.Equal(t, profile.Bio, got.Bio)
	assert.Equal(t, profile.NicheTags, got.NicheTags)
	assert.Equal(t, profile.Languages, got.Languages)
	assert.Equal(t, profile.Embedding, got.Embedding)
	assert.Equal(t, domain.ProfileActive, got.Status)
}

func TestProfileStore_GetNotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.ProfileStore().Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProfileStore_GetByUser(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	profiles := store.ProfileStore()

	require.NoError(t, profiles.Save(ctx, testProfile("prof_1", "creator_1")))

	got, err := profiles.GetByUser(ctx, "creator_1")
	require.NoError(t, err)
	assert.Equal(t, "prof_1", got.ID)

	_, err = profiles.GetByUser(ctx, "creator_2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProfileStore_Update(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	profiles := store.ProfileStore()

	profile := testProfile("prof_1", "creator_1")
	require.NoError(t, profiles.Save(ctx, profile))

	profile.Bio = "Updated bio"
	profile.Embedding = []float32{0.9, 0.8}
	require.NoError(t, profiles.Save(ctx, profile))

	got, err := profiles.Get(ctx, "prof_1")
	require.NoError(t, err)
	assert.Equal(t, "Updated bio", got.Bio)
	assert.Equal(t, []float32{0.9, 0.8}, got.Embedding)
}

func TestProfileStore_List(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	profiles := store.ProfileStore()

	require.NoError(t, profiles.Save(ctx, testProfile("prof_1", "creator_1")))
	require.NoError(t, profiles.Save(ctx, testProfile("prof_2", "creator_2")))

	list, err := profiles.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestProfileStore_EmptyEmbedding(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	profiles := store.ProfileStore()

	profile := testProfile("prof_1", "creator_1")
	profile.Embedding = nil
	require.NoError(t, profiles.Save(ctx, profile))

	got, err := profiles.Get(ctx, "prof_1")
	require.NoError(t, err)
	assert.Nil(t, got.Embedding)
}

// ==================== Request Store Tests ====================

func TestRequestStore_SaveAndGet(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	requests := store.RequestStore()

	request := testRequest("req_1", "brand_1")
	require.NoError(t, requests.Save(ctx, request))

	got, err := requests.Get(ctx, "req_1")
	require.NoError(t, err)
	assert.Equal(t, request.Title, got.Title)
	assert.Equal(t, request.BudgetMin, got.BudgetMin)
	assert.Equal(t, request.BudgetMax, got.BudgetMax)
	assert.Equal(t, request.Deliverables, got.Deliverables)
	assert.Equal(t, request.Embedding, got.Embedding)
}

func TestRequestStore_ListByBrand(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	requests := store.RequestStore()

	require.NoError(t, requests.Save(ctx, testRequest("req_1", "brand_1")))
	require.NoError(t, requests.Save(ctx, testRequest("req_2", "brand_1")))
	require.NoError(t, requests.Save(ctx, testRequest("req_3", "brand_2")))

	list, err := requests.ListByBrand(ctx, "brand_1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestRequestStore_ListActive(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	requests := store.RequestStore()

	require.NoError(t, requests.Save(ctx, testRequest("req_1", "brand_1")))

	closed := testRequest("req_2", "brand_1")
	closed.Status = domain.RequestClosed
	require.NoError(t, requests.Save(ctx, closed))

	list, err := requests.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "req_1", list[0].ID)
}

// ==================== Interest Store Tests ====================

func TestInterestStore_SaveAndGetByPair(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	interests := store.InterestStore()

	interest := domain.Interest{
		ID:        "int_1",
		CreatorID: "creator_1",
		RequestID: "req_1",
		Status:    domain.InterestPending,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, interests.Save(ctx, interest))

	got, err := interests.GetByPair(ctx, "creator_1", "req_1")
	require.NoError(t, err)
	assert.Equal(t, "int_1", got.ID)
	assert.Equal(t, domain.InterestPending, got.Status)

	_, err = interests.GetByPair(ctx, "creator_1", "req_other")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInterestStore_DuplicatePair(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	interests := store.InterestStore()

	first := domain.Interest{
		ID: "int_1", CreatorID: "creator_1", RequestID: "req_1",
		Status: domain.InterestPending, CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, interests.Save(ctx, first))

	// A second row for the same pair violates the unique constraint.
	second := first
	second.ID = "int_2"
	err := interests.Save(ctx, second)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestInterestStore_ListByCreatorAndRequest(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	interests := store.InterestStore()

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, interests.Save(ctx, domain.Interest{
		ID: "int_1", CreatorID: "creator_1", RequestID: "req_1",
		Status: domain.InterestPending, CreatedAt: now,
	}))
	require.NoError(t, interests.Save(ctx, domain.Interest{
		ID: "int_2", CreatorID: "creator_1", RequestID: "req_2",
		Status: domain.InterestPending, CreatedAt: now,
	}))
	require.NoError(t, interests.Save(ctx, domain.Interest{
		ID: "int_3", CreatorID: "creator_2", RequestID: "req_1",
		Status: domain.InterestPending, CreatedAt: now,
	}))

	byCreator, err := interests.ListByCreator(ctx, "creator_1")
	require.NoError(t, err)
	assert.Len(t, byCreator, 2)

	byRequest, err := interests.ListByRequest(ctx, "req_1")
	require.NoError(t, err)
	assert.Len(t, byRequest, 2)
}

// ==================== Chat Store Tests ====================

func testWindow(id string, now time.Time) domain.ChatWindow {
	return domain.ChatWindow{
		ID:        id,
		BrandID:   "brand_1",
		CreatorID: "creator_1",
		RequestID: "req_1",
		CreatedAt: now,
		ExpiresAt: now.Add(domain.ChatWindowTTL),
		Status:    domain.ChatActive,
	}
}

func TestChatStore_SaveAndGetWindow(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	chats := store.ChatStore()

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, chats.SaveWindow(ctx, testWindow("chat_1", now)))

	got, err := chats.GetWindow(ctx, "chat_1")
	require.NoError(t, err)
	assert.Equal(t, "brand_1", got.BrandID)
	assert.Equal(t, domain.ChatActive, got.Status)
	assert.Equal(t, now.Add(domain.ChatWindowTTL), got.ExpiresAt.UTC())
}

func TestChatStore_ActiveWindow(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	chats := store.ChatStore()

	now := time.Now().UTC().Truncate(time.Second)
	expired := testWindow("chat_1", now)
	expired.Status = domain.ChatExpired
	require.NoError(t, chats.SaveWindow(ctx, expired))

	_, err := chats.ActiveWindow(ctx, "brand_1", "creator_1", "req_1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, chats.SaveWindow(ctx, testWindow("chat_2", now)))
	got, err := chats.ActiveWindow(ctx, "brand_1", "creator_1", "req_1")
	require.NoError(t, err)
	assert.Equal(t, "chat_2", got.ID)
}

func TestChatStore_ListWindows(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	chats := store.ChatStore()

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, chats.SaveWindow(ctx, testWindow("chat_1", now)))

	other := testWindow("chat_2", now)
	other.BrandID = "brand_2"
	other.CreatorID = "creator_2"
	require.NoError(t, chats.SaveWindow(ctx, other))

	all, err := chats.ListWindows(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := chats.ListWindows(ctx, "creator_1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "chat_1", mine[0].ID)
}

func TestChatStore_AppendMessageAssignsSeq(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	chats := store.ChatStore()

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, chats.SaveWindow(ctx, testWindow("chat_1", now)))

	first, err := chats.AppendMessage(ctx, domain.Message{
		ID: "msg_1", ChatID: "chat_1", SenderID: "brand_1",
		Content: "hello", SentAt: now,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.Seq)

	second, err := chats.AppendMessage(ctx, domain.Message{
		ID: "msg_2", ChatID: "chat_1", SenderID: "creator_1",
		Content: "hi", SentAt: now,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.Seq)
}

func TestChatStore_AppendMessageMissingWindow(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.ChatStore().AppendMessage(context.Background(), domain.Message{
		ID: "msg_1", ChatID: "missing", SenderID: "brand_1",
		Content: "hello", SentAt: time.Now().UTC(),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChatStore_ListMessagesOrdered(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	chats := store.ChatStore()

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, chats.SaveWindow(ctx, testWindow("chat_1", now)))

	// Same SentAt: seq breaks the tie.
	for i, id := range []string{"msg_1", "msg_2", "msg_3"} {
		_, err := chats.AppendMessage(ctx, domain.Message{
			ID: id, ChatID: "chat_1", SenderID: "brand_1",
			Content: "m" + id, SentAt: now,
		})
		require.NoError(t, err, "message %d", i)
	}

	msgs, err := chats.ListMessages(ctx, "chat_1")
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "msg_1", msgs[0].ID)
	assert.Equal(t, "msg_3", msgs[2].ID)
}

func TestChatStore_CountMessages(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	chats := store.ChatStore()

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, chats.SaveWindow(ctx, testWindow("chat_1", now)))

	_, err := chats.AppendMessage(ctx, domain.Message{
		ID: "msg_1", ChatID: "chat_1", SenderID: "brand_1",
		Content: "old", SentAt: now.Add(-time.Hour),
	})
	require.NoError(t, err)
	_, err = chats.AppendMessage(ctx, domain.Message{
		ID: "msg_2", ChatID: "chat_1", SenderID: "brand_1",
		Content: "new", SentAt: now,
	})
	require.NoError(t, err)

	count, err := chats.CountMessages(ctx, "brand_1", now.Add(-time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = chats.CountMessages(ctx, "creator_1", now.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

// ==================== Deal Store Tests ====================

func testDeal(id string, now time.Time) domain.Deal {
	return domain.Deal{
		ID:        id,
		RequestID: "req_1",
		BrandID:   "brand_1",
		CreatorID: "creator_1",
		Terms: domain.DealTerms{
			Deliverables:  []string{"1 video"},
			Timeline:      "2 weeks",
			PaymentAmount: 3000,
			UsageRights:   "6 months",
		},
		Confirmations: []string{"brand_1"},
		Status:        domain.DealPending,
		CreatedAt:     now,
	}
}

func TestDealStore_SaveAndGet(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	deals := store.DealStore()

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, deals.Save(ctx, testDeal("deal_1", now)))

	got, err := deals.Get(ctx, "deal_1")
	require.NoError(t, err)
	assert.Equal(t, domain.DealPending, got.Status)
	assert.Equal(t, []string{"brand_1"}, got.Confirmations)
	assert.Equal(t, float64(3000), got.Terms.PaymentAmount)
	assert.True(t, got.FinalizedAt.IsZero())
}

func TestDealStore_FinalizedAtRoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	deals := store.DealStore()

	now := time.Now().UTC().Truncate(time.Second)
	deal := testDeal("deal_1", now)
	deal.Status = domain.DealFinal
	deal.Confirmations = []string{"brand_1", "creator_1"}
	deal.FinalizedAt = now
	require.NoError(t, deals.Save(ctx, deal))

	got, err := deals.Get(ctx, "deal_1")
	require.NoError(t, err)
	assert.Equal(t, domain.DealFinal, got.Status)
	assert.Equal(t, now, got.FinalizedAt.UTC())
}

func TestDealStore_ListByParty(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	deals := store.DealStore()

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, deals.Save(ctx, testDeal("deal_1", now)))

	other := testDeal("deal_2", now)
	other.BrandID = "brand_2"
	other.CreatorID = "creator_2"
	require.NoError(t, deals.Save(ctx, other))

	mine, err := deals.ListByParty(ctx, "creator_1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "deal_1", mine[0].ID)
}

func TestDealStore_ListOpen(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	deals := store.DealStore()

	now := time.Now().UTC().Truncate(time.Second)

	proposed := testDeal("deal_1", now)
	proposed.Status = domain.DealProposed
	require.NoError(t, deals.Save(ctx, proposed))

	pending := testDeal("deal_2", now)
	require.NoError(t, deals.Save(ctx, pending))

	final := testDeal("deal_3", now)
	final.Status = domain.DealFinal
	require.NoError(t, deals.Save(ctx, final))

	open, err := deals.ListOpen(ctx)
	require.NoError(t, err)
	assert.Len(t, open, 2)
}

// ==================== Contract Store Tests ====================

func TestContractStore_SaveAndGetByDeal(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.DealStore().Save(ctx, testDeal("deal_1", now)))

	contracts := store.ContractStore()
	contract := domain.Contract{
		ID:       "con_1",
		DealID:   "deal_1",
		Language: "English",
		Sections: map[string]string{
			"deliverables": "1 video within 2 weeks",
			"paymentTerms": "USD 3000 net 30",
		},
		URL:       "matcha://contracts/con_1.pdf",
		CreatedAt: now,
	}
	require.NoError(t, contracts.Save(ctx, contract))

	got, err := contracts.GetByDeal(ctx, "deal_1")
	require.NoError(t, err)
	assert.Equal(t, "con_1", got.ID)
	assert.Equal(t, contract.Sections, got.Sections)

	byID, err := contracts.Get(ctx, "con_1")
	require.NoError(t, err)
	assert.Equal(t, "deal_1", byID.DealID)
}

func TestContractStore_DuplicateDeal(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, store.DealStore().Save(ctx, testDeal("deal_1", now)))

	contracts := store.ContractStore()
	first := domain.Contract{
		ID: "con_1", DealID: "deal_1", Language: "English",
		Sections: map[string]string{}, CreatedAt: now,
	}
	require.NoError(t, contracts.Save(ctx, first))

	second := first
	second.ID = "con_2"
	err := contracts.Save(ctx, second)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

// ==================== Vector Encoding Tests ====================

func TestFloat32SliceRoundTrip(t *testing.T) {
	vec := []float32{0.1, -0.5, 3.14, 0}
	assert.Equal(t, vec, bytesToFloat32Slice(float32SliceToBytes(vec)))

	assert.Nil(t, float32SliceToBytes(nil))
	assert.Nil(t, bytesToFloat32Slice(nil))
	assert.Nil(t, bytesToFloat32Slice([]byte{1, 2, 3}), "misaligned data yields nil")
}
