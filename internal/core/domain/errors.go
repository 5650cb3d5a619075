package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity with the same unique key already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates schema-valid but semantically invalid input,
	// such as budgetMin greater than budgetMax or an empty message body.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidState indicates an operation on an entity whose current
	// state forbids it, such as messaging an expired chat window.
	ErrInvalidState = errors.New("invalid state")

	// ErrPermissionDenied indicates the acting user is not a party to the entity.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrTermsMismatch indicates a deal confirmation whose terms disagree
	// with the snapshot recorded by the first confirming party.
	ErrTermsMismatch = errors.New("terms mismatch")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// Profiles and requests are stored without vectors; matching falls back
	// to tag overlap scoring.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrGeneratorUnavailable indicates the text generation service is not
	// configured. ROI narratives and contract rendering are disabled.
	ErrGeneratorUnavailable = errors.New("generation service unavailable")
)
