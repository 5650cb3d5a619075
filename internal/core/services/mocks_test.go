package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/matcha-labs/matcha-mcp/internal/core/ports/driven"
)

// fakeClock is a settable time source so tests can drive expiry
// deterministically.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// seqIDs issues deterministic IDs like "profile_1", "profile_2".
type seqIDs struct {
	mu sync.Mutex
	n  map[string]int
}

func newSeqIDs() *seqIDs {
	return &seqIDs{n: make(map[string]int)}
}

func (g *seqIDs) NewID(kind string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n[kind]++
	return fmt.Sprintf("%s_%d", kind, g.n[kind])
}

// fakeEmbedder returns a canned vector, counting calls.
type fakeEmbedder struct {
	mu    sync.Mutex
	vec   []float32
	err   error
	calls int
	texts []string
}

func (e *fakeEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls++
	e.texts = append(e.texts, text)
	if e.err != nil {
		return nil, e.err
	}
	return e.vec, nil
}

func (e *fakeEmbedder) Dimensions() int   { return len(e.vec) }
func (e *fakeEmbedder) ModelName() string { return "fake-embedder" }
func (e *fakeEmbedder) Close() error      { return nil }

// fakeScorer scores via the injected function, counting calls.
type fakeScorer struct {
	mu    sync.Mutex
	score func(requestVec, profileVec []float32) float64
	calls int
}

func (s *fakeScorer) Score(requestVec, profileVec []float32) float64 {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.score != nil {
		return s.score(requestVec, profileVec)
	}
	return 0
}

func (s *fakeScorer) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// fakeGenerator replays a canned completion, recording prompts and options.
type fakeGenerator struct {
	mu      sync.Mutex
	text    string
	err     error
	prompts []string
	opts    []driven.GenerateOptions
}

func (g *fakeGenerator) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prompts = append(g.prompts, prompt)
	g.opts = append(g.opts, opts)
	if g.err != nil {
		return "", g.err
	}
	return g.text, nil
}

func (g *fakeGenerator) ModelName() string { return "fake-generator" }
func (g *fakeGenerator) Close() error      { return nil }

func (g *fakeGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.prompts)
}
