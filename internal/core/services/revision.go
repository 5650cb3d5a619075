package services

import "sync/atomic"

// Revision is a monotonic counter bumped on every profile or request
// write. The matching cache records the revision a result was computed at
// and refuses to serve entries computed before the current revision, so a
// cached ranking can never be stale relative to a just-written entity.
type Revision struct {
	n atomic.Uint64
}

// NewRevision creates a revision counter starting at zero.
func NewRevision() *Revision {
	return &Revision{}
}

// Bump advances the revision. Called after every successful write.
func (r *Revision) Bump() {
	r.n.Add(1)
}

// Current returns the current revision token.
func (r *Revision) Current() uint64 {
	return r.n.Load()
}
