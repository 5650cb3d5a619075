package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matcha-labs/matcha-mcp/internal/adapters/driven/storage/memory"
	"github.com/matcha-labs/matcha-mcp/internal/core/domain"
	"github.com/matcha-labs/matcha-mcp/internal/core/ports/driving"
)

func newProfileInput() driving.NewProfile {
	return driving.NewProfile{
		UserID:    "creator-1",
		Bio:       "Tech reviews and teardown videos",
		NicheTags: []string{"tech", "gadgets"},
		Location:  "Berlin",
		Languages: []string{"English", "German"},
	}
}

func TestProfileService_Create_Success(t *testing.T) {
	store := memory.NewProfileStore()
	clock := newFakeClock()
	revision := NewRevision()
	embedder := &fakeEmbedder{vec: []float32{0.1, 0.2}}
	service := NewProfileService(store, embedder, clock, newSeqIDs(), revision)

	profile, err := service.Create(context.Background(), newProfileInput())

	require.NoError(t, err)
	assert.Equal(t, "profile_1", profile.ID)
	assert.Equal(t, "creator-1", profile.UserID)
	assert.Equal(t, domain.ProfileActive, profile.Status)
	assert.Equal(t, []float32{0.1, 0.2}, profile.Embedding)
	assert.Equal(t, clock.Now(), profile.CreatedAt)
	assert.Equal(t, uint64(1), revision.Current())

	// The embedding input is the bio plus the joined tags.
	require.Len(t, embedder.texts, 1)
	assert.Equal(t, "Tech reviews and teardown videos\ntech gadgets", embedder.texts[0])
}

func TestProfileService_Create_MissingFields(t *testing.T) {
	service := NewProfileService(memory.NewProfileStore(), nil, newFakeClock(), newSeqIDs(), NewRevision())

	in := newProfileInput()
	in.Bio = ""
	_, err := service.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = newProfileInput()
	in.UserID = ""
	_, err = service.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProfileService_Create_NoEmbedder(t *testing.T) {
	service := NewProfileService(memory.NewProfileStore(), nil, newFakeClock(), newSeqIDs(), NewRevision())

	profile, err := service.Create(context.Background(), newProfileInput())

	require.NoError(t, err)
	assert.Empty(t, profile.Embedding)
}

func TestProfileService_Create_EmbedderFailureDegrades(t *testing.T) {
	store := memory.NewProfileStore()
	embedder := &fakeEmbedder{err: errors.New("upstream down")}
	service := NewProfileService(store, embedder, newFakeClock(), newSeqIDs(), NewRevision())

	// A failing embedder must not fail the write.
	profile, err := service.Create(context.Background(), newProfileInput())

	require.NoError(t, err)
	assert.Empty(t, profile.Embedding)

	stored, err := store.Get(context.Background(), profile.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Embedding)
}

func TestProfileService_UpdateBio(t *testing.T) {
	store := memory.NewProfileStore()
	clock := newFakeClock()
	revision := NewRevision()
	embedder := &fakeEmbedder{vec: []float32{0.5}}
	service := NewProfileService(store, embedder, clock, newSeqIDs(), revision)

	profile, err := service.Create(context.Background(), newProfileInput())
	require.NoError(t, err)

	clock.Advance(time.Hour)

	updated, err := service.UpdateBio(context.Background(), profile.ID, "Now covering gaming too", []string{"gaming"})
	require.NoError(t, err)
	assert.Equal(t, "Now covering gaming too", updated.Bio)
	assert.Equal(t, []string{"gaming"}, updated.NicheTags)
	assert.Equal(t, clock.Now(), updated.UpdatedAt)
	assert.Equal(t, uint64(2), revision.Current())
	assert.Equal(t, 2, embedder.calls)
}

func TestProfileService_UpdateBio_EmptyBio(t *testing.T) {
	service := NewProfileService(memory.NewProfileStore(), nil, newFakeClock(), newSeqIDs(), NewRevision())

	_, err := service.UpdateBio(context.Background(), "profile_1", "", nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProfileService_UpdateBio_UnknownProfile(t *testing.T) {
	service := NewProfileService(memory.NewProfileStore(), nil, newFakeClock(), newSeqIDs(), NewRevision())

	_, err := service.UpdateBio(context.Background(), "profile_missing", "bio", nil)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProfileService_GetAndList(t *testing.T) {
	service := NewProfileService(memory.NewProfileStore(), nil, newFakeClock(), newSeqIDs(), NewRevision())
	ctx := context.Background()

	created, err := service.Create(ctx, newProfileInput())
	require.NoError(t, err)

	got, err := service.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.UserID, got.UserID)

	all, err := service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
