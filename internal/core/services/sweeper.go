package services

import (
	"context"
	"sync"
	"time"

	"github.com/matcha-labs/matcha-mcp/internal/logger"
)

// DefaultSweepInterval is how often the sweeper runs.
const DefaultSweepInterval = 10 * time.Minute

// Sweeper periodically transitions chat windows and deals past their
// deadlines. Correctness never depends on it - expiry is observed lazily
// on access - but the proactive sweep keeps analytics projections current.
type Sweeper struct {
	chats    *ChatService
	deals    *DealService
	interval time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// NewSweeper creates a sweeper over the chat and deal services.
func NewSweeper(chats *ChatService, deals *DealService, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	return &Sweeper{chats: chats, deals: deals, interval: interval}
}

// Start launches the sweep loop in the background. It is a no-op when
// already running.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopCh:
				return
			case <-ticker.C:
				s.sweep(ctx)
			}
		}
	}()
}

// Stop shuts the sweeper down and waits for an in-flight sweep.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Sweeper) sweep(ctx context.Context) {
	if chats, err := s.chats.SweepExpired(ctx); err != nil {
		logger.Warn("Chat sweep failed: %v", err)
	} else if chats > 0 {
		logger.Debug("Swept %d chat windows", chats)
	}
	if deals, err := s.deals.SweepExpired(ctx); err != nil {
		logger.Warn("Deal sweep failed: %v", err)
	} else if deals > 0 {
		logger.Debug("Swept %d deals", deals)
	}
}
