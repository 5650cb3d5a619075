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

// Ensure ProfileService implements the interface.
var _ driving.ProfileService = (*ProfileService)(nil)

// ProfileService manages creator profiles. It owns embedding computation
// for profiles: the vector is computed on create and recomputed whenever
// bio or tags change, then written back through the store.
type ProfileService struct {
	store    driven.ProfileStore
	embedder driven.EmbeddingService
	clock    driven.Clock
	ids      driven.IDGenerator
	revision *Revision
}

// NewProfileService creates a new profile service.
// The embedder is optional (can be nil).
func NewProfileService(
	store driven.ProfileStore,
	embedder driven.EmbeddingService,
	clock driven.Clock,
	ids driven.IDGenerator,
	revision *Revision,
) *ProfileService {
	return &ProfileService{
		store:    store,
		embedder: embedder,
		clock:    clock,
		ids:      ids,
		revision: revision,
	}
}

// Create registers a new profile and computes its embedding.
func (s *ProfileService) Create(ctx context.Context, in driving.NewProfile) (*domain.Profile, error) {
	if in.UserID == "" || in.Bio == "" {
		return nil, fmt.Errorf("%w: userId and bio are required", domain.ErrInvalidInput)
	}

	now := s.clock.Now()
	profile := domain.Profile{
		ID:        s.ids.NewID("profile"),
		UserID:    in.UserID,
		Bio:       in.Bio,
		NicheTags: in.NicheTags,
		Location:  in.Location,
		Languages: in.Languages,
		Status:    domain.ProfileActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// Embedding happens outside any entity lock; a missing embedder
	// leaves the vector empty and matching falls back to tag overlap.
	profile.Embedding = s.embed(ctx, profileText(profile))

	if err := s.store.Save(ctx, profile); err != nil {
		return nil, fmt.Errorf("saving profile: %w", err)
	}
	s.revision.Bump()

	logger.Debug("Created profile %s for user %s", profile.ID, profile.UserID)
	return &profile, nil
}

// Get retrieves a profile by ID.
func (s *ProfileService) Get(ctx context.Context, id string) (*domain.Profile, error) {
	return s.store.Get(ctx, id)
}

// UpdateBio replaces the bio and niche tags, recomputing the embedding.
func (s *ProfileService) UpdateBio(ctx context.Context, id, bio string, nicheTags []string) (*domain.Profile, error) {
	if bio == "" {
		return nil, fmt.Errorf("%w: bio is required", domain.ErrInvalidInput)
	}

	profile, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	profile.Bio = bio
	profile.NicheTags = nicheTags
	profile.UpdatedAt = s.clock.Now()
	profile.Embedding = s.embed(ctx, profileText(*profile))

	if err := s.store.Save(ctx, *profile); err != nil {
		return nil, fmt.Errorf("saving profile: %w", err)
	}
	s.revision.Bump()

	return profile, nil
}

// List returns all profiles.
func (s *ProfileService) List(ctx context.Context) ([]domain.Profile, error) {
	return s.store.List(ctx)
}

// embed computes a vector for text, or nil when no embedder is configured
// or the call fails. Matching degrades rather than the write failing.
func (s *ProfileService) embed(ctx context.Context, text string) []float32 {
	if s.embedder == nil {
		return nil
	}
	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		logger.Warn("Embedding failed, storing without vector: %v", err)
		return nil
	}
	return vec
}

// profileText builds the embedding input from the matchable profile fields.
func profileText(p domain.Profile) string {
	return p.Bio + "\n" + strings.Join(p.NicheTags, " ")
}
