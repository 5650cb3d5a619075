package services

import "sync"

// keyMutex provides per-key locking so mutations on distinct entities
// proceed in parallel while mutations on the same entity serialise.
// Mutexes are created on first use and never reclaimed; the key space
// (entity IDs touched by writes) is small relative to entity counts.
type keyMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyMutex() *keyMutex {
	return &keyMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the lock for key and returns the unlock function.
func (k *keyMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
