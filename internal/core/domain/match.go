package domain

import "fmt"

// MatchResult is a derived ranking of one creator against one request.
// It is recomputed on demand and never persisted as source of truth.
type MatchResult struct {
	// RequestID is the collaboration request being matched.
	RequestID string

	// CreatorID is the matched profile's owning user ID.
	CreatorID string

	// ProfileID is the matched profile.
	ProfileID string

	// Score is the similarity score in [0,100].
	Score float64

	// NicheTags and Location are copied from the profile for display.
	NicheTags []string
	Location  string
}

// MatchFilters restrict the candidate set for a match query.
// Filters affect eligibility only, never the score itself.
type MatchFilters struct {
	// Niche restricts candidates to profiles whose tags intersect this set.
	Niche []string

	// Location restricts candidates by location. Matching policy is
	// pluggable; the default is a case-insensitive exact match.
	Location string

	// BudgetRange is advisory: a candidate is eligible when the ranges
	// overlap or no range is set. It does not affect scoring.
	BudgetRange *BudgetRange
}

// BudgetRange is an inclusive budget interval.
type BudgetRange struct {
	Min float64
	Max float64
}

// Validate checks the filter's own invariants.
func (f *MatchFilters) Validate() error {
	if f == nil {
		return nil
	}
	if f.BudgetRange != nil && f.BudgetRange.Min > f.BudgetRange.Max {
		return fmt.Errorf("%w: budget range min exceeds max", ErrInvalidInput)
	}
	return nil
}
