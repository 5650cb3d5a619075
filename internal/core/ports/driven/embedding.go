package driven

import "context"

// EmbeddingService generates similarity vectors from text.
// This is an optional service - when nil, profiles and requests are stored
// without vectors and matching falls back to tag overlap scoring.
//
// Implementations may include:
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//   - Local models via inference servers
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 1536).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}

// Scorer turns two embedding vectors into a match score in [0,100].
// The scoring function is opaque to the core: implementations may use
// cosine similarity, learned rankers, or anything else honouring the range.
type Scorer interface {
	// Score computes the similarity of a request vector against a profile
	// vector. Either vector may be empty; implementations must still
	// return a value in [0,100].
	Score(requestVec, profileVec []float32) float64
}
