package driven

import (
	"context"

	"github.com/matcha-labs/matcha-mcp/internal/core/domain"
)

// EventSink receives deal lifecycle events. The finalized event is emitted
// atomically with the finalizing state transition: it fires exactly once
// per deal, and never unless both confirmations are recorded.
//
// Implementations must not block; slow consumers should buffer internally.
type EventSink interface {
	// DealFinalized notifies that a deal reached mutual confirmation.
	DealFinalized(ctx context.Context, event domain.DealFinalized)
}
