package domain

import "time"

// Contract is a rendered agreement document for a finalized deal.
// Rendering itself is delegated to an external generator; the core only
// supplies the finalized terms and records the result.
type Contract struct {
	// ID is the unique identifier for the contract.
	ID string

	// DealID is the finalized deal the contract was rendered from.
	DealID string

	// Language is the contract language (default "English").
	Language string

	// Sections maps section names (deliverables, timeline, payment,
	// usage rights, revisions, termination) to rendered text.
	Sections map[string]string

	// URL is where the rendered document can be retrieved.
	URL string

	// CreatedAt is when the contract was rendered.
	CreatedAt time.Time
}
