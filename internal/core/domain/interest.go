package domain

import "time"

// InterestStatus is the lifecycle state of an expressed interest.
type InterestStatus string

// Interest statuses.
const (
	InterestPending      InterestStatus = "pending"
	InterestAcknowledged InterestStatus = "acknowledged"
	InterestWithdrawn    InterestStatus = "withdrawn"
)

// Interest records a creator's interest in a collaboration request.
// At most one Interest exists per (CreatorID, RequestID) pair; expressing
// interest again returns the existing record unchanged.
type Interest struct {
	// ID is the unique identifier for the interest.
	ID string

	// CreatorID is the interested creator's user ID.
	CreatorID string

	// RequestID is the collaboration request.
	RequestID string

	// Status is the interest lifecycle state.
	Status InterestStatus

	// CreatedAt is when interest was first expressed.
	CreatedAt time.Time
}
