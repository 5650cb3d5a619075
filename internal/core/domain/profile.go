package domain

import "time"

// ProfileStatus is the lifecycle state of a creator profile.
type ProfileStatus string

// Profile statuses.
const (
	ProfileActive    ProfileStatus = "active"
	ProfileSuspended ProfileStatus = "suspended"
)

// Profile represents a creator's registered identity and content-niche
// metadata used for matching.
type Profile struct {
	// ID is the unique identifier for the profile.
	ID string

	// UserID is the owning creator's user ID.
	UserID string

	// Bio is the creator's biography. Changing it triggers embedding recomputation.
	Bio string

	// NicheTags are the content niches the creator works in (e.g. "tech", "food").
	NicheTags []string

	// Location is the creator's location.
	Location string

	// Languages are the languages the creator produces content in, in
	// order of preference.
	Languages []string

	// Embedding is the opaque similarity vector computed from bio and tags.
	// Empty when no embedding service is configured.
	Embedding []float32

	// Status is the profile lifecycle state.
	Status ProfileStatus

	// CreatedAt is when the profile was registered.
	CreatedAt time.Time

	// UpdatedAt is when the profile was last updated. Used as the
	// tie-break for equal match scores.
	UpdatedAt time.Time
}

// HasNiche reports whether the profile's niche tags intersect the given set.
func (p *Profile) HasNiche(tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, want := range tags {
		for _, have := range p.NicheTags {
			if have == want {
				return true
			}
		}
	}
	return false
}
