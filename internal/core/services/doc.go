// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Per-entity mutations are linearized with a keyed mutex: interest
// creation locks the (creator, request) pair, window operations lock the
// chat ID, confirmations lock the deal ID. External calls (embedding,
// text generation) never happen while an entity lock is held.
package services
