// Package clock provides the system implementation of driven.Clock.
package clock

import (
	"time"

	"github.com/matcha-labs/matcha-mcp/internal/core/ports/driven"
)

// Ensure System implements the interface.
var _ driven.Clock = System{}

// System reads the wall clock.
type System struct{}

// Now returns the current UTC time.
func (System) Now() time.Time {
	return time.Now().UTC()
}
