package services

import (
	"context"
	"fmt"
	"time"

	"github.com/matcha-labs/matcha-mcp/internal/core/domain"
	"github.com/matcha-labs/matcha-mcp/internal/core/ports/driven"
	"github.com/matcha-labs/matcha-mcp/internal/core/ports/driving"
)

// Ensure AnalyticsService implements the interface.
var _ driving.AnalyticsService = (*AnalyticsService)(nil)

// AnalyticsService is a pure read-side projection over the entity stores.
// It has no write side effects and tolerates partial data: counts for
// missing segments are zero, never an error.
type AnalyticsService struct {
	profiles  driven.ProfileStore
	requests  driven.RequestStore
	interests driven.InterestStore
	chats     driven.ChatStore
	deals     driven.DealStore
	clock     driven.Clock
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(
	profiles driven.ProfileStore,
	requests driven.RequestStore,
	interests driven.InterestStore,
	chats driven.ChatStore,
	deals driven.DealStore,
	clock driven.Clock,
) *AnalyticsService {
	return &AnalyticsService{
		profiles:  profiles,
		requests:  requests,
		interests: interests,
		chats:     chats,
		deals:     deals,
		clock:     clock,
	}
}

// Snapshot computes counts and trends for a user over a time range.
// Trends compare the window against the immediately preceding window of
// equal length.
func (s *AnalyticsService) Snapshot(
	ctx context.Context, userID string, entityType domain.EntityType, timeRange string,
) (*domain.AnalyticsSnapshot, error) {
	if entityType != domain.EntityBrand && entityType != domain.EntityCreator {
		return nil, fmt.Errorf("%w: entityType must be brand or creator", domain.ErrInvalidInput)
	}
	window, err := domain.ParseTimeRange(timeRange)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	current, err := s.window(ctx, userID, entityType, now.Add(-window), now)
	if err != nil {
		return nil, err
	}
	previous, err := s.window(ctx, userID, entityType, now.Add(-2*window), now.Add(-window))
	if err != nil {
		return nil, err
	}

	return &domain.AnalyticsSnapshot{
		UserID:     userID,
		EntityType: entityType,
		Window:     window,
		Metrics:    current,
		Trends: domain.Trends{
			InterestsChange: domain.TrendDelta(current.Interests, previous.Interests),
			ChatsChange:     domain.TrendDelta(current.ChatWindows, previous.ChatWindows),
			DealsChange:     domain.TrendDelta(current.DealsFinalized, previous.DealsFinalized),
		},
		Generated: now,
	}, nil
}

// window counts activity involving userID within [from, to).
func (s *AnalyticsService) window(
	ctx context.Context, userID string, entityType domain.EntityType, from, to time.Time,
) (domain.Metrics, error) {
	var m domain.Metrics

	interests, err := s.interestsFor(ctx, userID, entityType)
	if err != nil {
		return m, err
	}
	for _, in := range interests {
		if within(in.CreatedAt, from, to) {
			m.Interests++
		}
	}

	windows, err := s.chats.ListWindows(ctx, userID)
	if err != nil {
		return m, fmt.Errorf("listing chat windows: %w", err)
	}
	for _, w := range windows {
		if within(w.CreatedAt, from, to) {
			m.ChatWindows++
		}
	}

	msgs, err := s.chats.CountMessages(ctx, userID, from)
	if err != nil {
		return m, fmt.Errorf("counting messages: %w", err)
	}
	m.Messages = msgs

	deals, err := s.deals.ListByParty(ctx, userID)
	if err != nil {
		return m, fmt.Errorf("listing deals: %w", err)
	}
	for _, d := range deals {
		if d.Status == domain.DealFinal && within(d.FinalizedAt, from, to) {
			m.DealsFinalized++
		}
	}

	// Match appearances approximate visibility: for a creator, the
	// number of active requests whose niches intersect the profile's;
	// for a brand, interests received across its requests.
	if entityType == domain.EntityCreator {
		m.MatchAppearances = s.creatorAppearances(ctx, userID, from, to)
	} else {
		m.MatchAppearances = len(interests)
	}

	return m, nil
}

// interestsFor resolves the interests relevant to the queried side.
func (s *AnalyticsService) interestsFor(
	ctx context.Context, userID string, entityType domain.EntityType,
) ([]domain.Interest, error) {
	if entityType == domain.EntityCreator {
		interests, err := s.interests.ListByCreator(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("listing interests: %w", err)
		}
		return interests, nil
	}

	requests, err := s.requests.ListByBrand(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing requests: %w", err)
	}
	var all []domain.Interest
	for _, r := range requests {
		interests, err := s.interests.ListByRequest(ctx, r.ID)
		if err != nil {
			return nil, fmt.Errorf("listing interests for request %s: %w", r.ID, err)
		}
		all = append(all, interests...)
	}
	return all, nil
}

// creatorAppearances counts active requests a creator's profile is
// eligible for by niche overlap. A missing profile means zero, not error.
func (s *AnalyticsService) creatorAppearances(ctx context.Context, userID string, from, to time.Time) int {
	profile, err := s.profiles.GetByUser(ctx, userID)
	if err != nil {
		return 0
	}
	requests, err := s.requests.ListActive(ctx)
	if err != nil {
		return 0
	}
	count := 0
	for _, r := range requests {
		if within(r.CreatedAt, from, to) && profile.HasNiche(r.NicheTags) {
			count++
		}
	}
	return count
}

func within(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}
