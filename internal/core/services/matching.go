package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matcha-labs/matcha-mcp/internal/core/domain"
	"github.com/matcha-labs/matcha-mcp/internal/core/ports/driven"
	"github.com/matcha-labs/matcha-mcp/internal/core/ports/driving"
	"github.com/matcha-labs/matcha-mcp/internal/logger"
)

// Ensure MatchingService implements the interface.
var _ driving.MatchingService = (*MatchingService)(nil)

// Default matching configuration.
const (
	// defaultCacheTTL bounds how long a cached ranking may be served.
	// The revision token is the real staleness guard; the TTL only
	// bounds memory pressure from rarely-invalidated entries.
	defaultCacheTTL = 30 * time.Second

	// maxCacheEntries bounds the cache size.
	maxCacheEntries = 128

	// scoreConcurrency bounds parallel candidate scoring.
	scoreConcurrency = 8
)

// LocationMatcher decides whether a profile location satisfies a location
// filter. The default is a case-insensitive exact match; fuzzy policies
// can be plugged in.
type LocationMatcher func(profileLocation, filter string) bool

// ExactLocation is the default location policy.
func ExactLocation(profileLocation, filter string) bool {
	return strings.EqualFold(profileLocation, filter)
}

// cacheEntry is one memoised ranking.
type cacheEntry struct {
	results []domain.MatchResult
	token   uint64
	at      time.Time
}

// MatchingService ranks active creator profiles against a request.
// It is read-only over the entity stores; raw similarity scoring is
// delegated to the injected scorer.
type MatchingService struct {
	requests  driven.RequestStore
	profiles  driven.ProfileStore
	scorer    driven.Scorer
	clock     driven.Clock
	revision  *Revision
	locations LocationMatcher
	cacheTTL  time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// NewMatchingService creates a new matching service.
func NewMatchingService(
	requests driven.RequestStore,
	profiles driven.ProfileStore,
	scorer driven.Scorer,
	clock driven.Clock,
	revision *Revision,
) *MatchingService {
	return &MatchingService{
		requests:  requests,
		profiles:  profiles,
		scorer:    scorer,
		clock:     clock,
		revision:  revision,
		locations: ExactLocation,
		cacheTTL:  defaultCacheTTL,
		cache:     make(map[string]cacheEntry),
	}
}

// SetLocationMatcher replaces the location filter policy.
func (s *MatchingService) SetLocationMatcher(m LocationMatcher) {
	if m != nil {
		s.locations = m
	}
}

// FindMatches returns eligible creators scoring at least minScore, sorted
// descending by score with ties broken by most recent profile update.
func (s *MatchingService) FindMatches(
	ctx context.Context, requestID string, minScore float64, filters *domain.MatchFilters,
) ([]domain.MatchResult, error) {
	if minScore < 0 || minScore > 100 {
		return nil, fmt.Errorf("%w: minScore must be in [0,100]", domain.ErrInvalidInput)
	}
	if err := filters.Validate(); err != nil {
		return nil, err
	}

	request, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != domain.RequestActive {
		return nil, fmt.Errorf("%w: request %s is %s", domain.ErrInvalidState, requestID, request.Status)
	}

	key := cacheKey(requestID, minScore, filters)
	token := s.revision.Current()
	if results, ok := s.cached(key, token); ok {
		logger.Debug("Match cache hit for request %s", requestID)
		return results, nil
	}

	candidates, err := s.eligible(ctx, request, filters)
	if err != nil {
		return nil, err
	}
	logger.Debug("Scoring %d eligible profiles for request %s", len(candidates), requestID)

	results, err := s.score(ctx, request, candidates, minScore)
	if err != nil {
		return nil, err
	}

	s.remember(key, token, results)
	return results, nil
}

// eligible applies the filters to the active profile set.
func (s *MatchingService) eligible(
	ctx context.Context, request *domain.Request, filters *domain.MatchFilters,
) ([]domain.Profile, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}

	eligible := make([]domain.Profile, 0, len(profiles))
	for _, p := range profiles {
		if p.Status != domain.ProfileActive {
			continue
		}
		if p.UserID == request.BrandID {
			continue
		}
		if filters != nil {
			if !p.HasNiche(filters.Niche) {
				continue
			}
			if filters.Location != "" && !s.locations(p.Location, filters.Location) {
				continue
			}
			// Budget is advisory eligibility only: the request budget
			// must overlap the filter range. It never affects the score.
			if br := filters.BudgetRange; br != nil {
				if request.BudgetMax < br.Min || request.BudgetMin > br.Max {
					continue
				}
			}
		}
		eligible = append(eligible, p)
	}
	return eligible, nil
}

// score fans candidate scoring out with bounded concurrency, then filters
// and orders the results.
func (s *MatchingService) score(
	ctx context.Context, request *domain.Request, candidates []domain.Profile, minScore float64,
) ([]domain.MatchResult, error) {
	type scored struct {
		result  domain.MatchResult
		updated time.Time
		keep    bool
	}
	out := make([]scored, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(scoreConcurrency)
	for i := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p := candidates[i]
			score := s.scoreOne(request, &p)
			if score < minScore {
				return nil
			}
			out[i] = scored{
				result: domain.MatchResult{
					RequestID: request.ID,
					CreatorID: p.UserID,
					ProfileID: p.ID,
					Score:     score,
					NicheTags: p.NicheTags,
					Location:  p.Location,
				},
				updated: p.UpdatedAt,
				keep:    true,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	kept := make([]scored, 0, len(out))
	for _, sc := range out {
		if sc.keep {
			kept = append(kept, sc)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].result.Score != kept[j].result.Score {
			return kept[i].result.Score > kept[j].result.Score
		}
		return kept[i].updated.After(kept[j].updated)
	})

	results := make([]domain.MatchResult, len(kept))
	for i, sc := range kept {
		results[i] = sc.result
	}
	return results, nil
}

// scoreOne scores a single profile against the request. When either
// embedding is missing the score falls back to tag overlap.
func (s *MatchingService) scoreOne(request *domain.Request, p *domain.Profile) float64 {
	if len(request.Embedding) > 0 && len(p.Embedding) > 0 {
		return clampScore(s.scorer.Score(request.Embedding, p.Embedding))
	}
	return tagOverlapScore(request.NicheTags, p.NicheTags)
}

// tagOverlapScore is the vector-free fallback: the Jaccard overlap of
// niche tags scaled to [0,100].
func tagOverlapScore(want, have []string) float64 {
	if len(want) == 0 || len(have) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(want))
	for _, t := range want {
		set[strings.ToLower(t)] = struct{}{}
	}
	shared := 0
	union := len(set)
	for _, t := range have {
		if _, ok := set[strings.ToLower(t)]; ok {
			shared++
		} else {
			union++
		}
	}
	return clampScore(float64(shared) / float64(union) * 100)
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// cached returns a memoised ranking when it was computed at the current
// revision and is within the TTL.
func (s *MatchingService) cached(key string, token uint64) ([]domain.MatchResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.cache[key]
	if !ok || entry.token != token || s.clock.Now().Sub(entry.at) > s.cacheTTL {
		return nil, false
	}
	return entry.results, true
}

// remember memoises a ranking, evicting the oldest entry when full.
func (s *MatchingService) remember(key string, token uint64, results []domain.MatchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cache) >= maxCacheEntries {
		var oldestKey string
		var oldest time.Time
		for k, e := range s.cache {
			if oldestKey == "" || e.at.Before(oldest) {
				oldestKey, oldest = k, e.at
			}
		}
		delete(s.cache, oldestKey)
	}
	s.cache[key] = cacheEntry{results: results, token: token, at: s.clock.Now()}
}

// cacheKey fingerprints a match query.
func cacheKey(requestID string, minScore float64, filters *domain.MatchFilters) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%.2f", requestID, minScore)
	if filters != nil {
		fmt.Fprintf(&b, "|n=%s|l=%s", strings.Join(filters.Niche, ","), filters.Location)
		if filters.BudgetRange != nil {
			fmt.Fprintf(&b, "|b=%.2f-%.2f", filters.BudgetRange.Min, filters.BudgetRange.Max)
		}
	}
	return b.String()
}
