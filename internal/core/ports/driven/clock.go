package driven

import "time"

// Clock is the time source injected into every core service. Services
// never call time.Now directly so tests can drive expiry deterministically.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// IDGenerator produces process-wide unique identifiers. IDs must never be
// derived from wall clock alone: concurrent callers must not collide.
type IDGenerator interface {
	// NewID returns a unique identifier with the given kind prefix
	// (e.g. NewID("profile") -> "profile_8f14e45f...").
	NewID(kind string) string
}
