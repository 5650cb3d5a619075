// Package events provides in-process implementations of driven.EventSink.
package events

import (
	"context"
	"sync"

	"github.com/matcha-labs/matcha-mcp/internal/core/domain"
	"github.com/matcha-labs/matcha-mcp/internal/core/ports/driven"
	"github.com/matcha-labs/matcha-mcp/internal/logger"
)

// Ensure Log implements the interface.
var _ driven.EventSink = (*Log)(nil)

// Log is an in-process event sink that records finalized deals for later
// consumption (the contract generator, tests). It never blocks.
type Log struct {
	mu     sync.Mutex
	events []domain.DealFinalized
}

// NewLog creates an empty event log.
func NewLog() *Log {
	return &Log{}
}

// DealFinalized records the event.
func (l *Log) DealFinalized(_ context.Context, event domain.DealFinalized) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
	logger.Info("Event: deal %s finalized (request %s)", event.DealID, event.RequestID)
}

// Events returns a copy of the recorded events.
func (l *Log) Events() []domain.DealFinalized {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.DealFinalized, len(l.events))
	copy(out, l.events)
	return out
}
