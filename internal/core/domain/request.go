package domain

import "time"

// RequestStatus is the lifecycle state of a collaboration request.
type RequestStatus string

// Request statuses.
const (
	RequestActive RequestStatus = "active"
	RequestClosed RequestStatus = "closed"
)

// Request represents a brand's posted campaign seeking creator matches.
type Request struct {
	// ID is the unique identifier for the request.
	ID string

	// BrandID is the owning brand's user ID.
	BrandID string

	// Title is the campaign title.
	Title string

	// Description is the detailed campaign description. Changing it
	// triggers embedding recomputation.
	Description string

	// BudgetMin and BudgetMax bound the campaign budget. BudgetMin must
	// not exceed BudgetMax.
	BudgetMin float64
	BudgetMax float64

	// Timeline is the expected timeline, free text (e.g. "2 weeks").
	Timeline string

	// Deliverables are the expected deliverables, in order.
	Deliverables []string

	// NicheTags are the target content niches.
	NicheTags []string

	// Embedding is the opaque similarity vector computed from title,
	// description and tags. Empty when no embedding service is configured.
	Embedding []float32

	// Status is the request lifecycle state. A request closes when a deal
	// under it finalizes or it is explicitly withdrawn.
	Status RequestStatus

	// CreatedAt is when the request was posted.
	CreatedAt time.Time

	// UpdatedAt is when the request was last updated.
	UpdatedAt time.Time
}

// Validate checks cross-field invariants on the request.
func (r *Request) Validate() error {
	if r.BrandID == "" || r.Title == "" {
		return ErrInvalidInput
	}
	if r.BudgetMin > r.BudgetMax {
		return ErrInvalidInput
	}
	return nil
}
