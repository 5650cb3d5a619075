// Package scoring provides match scorers over embedding vectors.
package scoring

import (
	"math"

	"github.com/matcha-labs/matcha-mcp/internal/core/ports/driven"
)

// Ensure Cosine implements the interface.
var _ driven.Scorer = (*Cosine)(nil)

// Cosine scores vector pairs by cosine similarity scaled to 0-100.
// Negative similarity clamps to 0.
type Cosine struct{}

// NewCosine creates a cosine similarity scorer.
func NewCosine() *Cosine {
	return &Cosine{}
}

// Score computes the similarity between two vectors on a 0-100 scale.
// Mismatched lengths and zero vectors score 0.
func (c *Cosine) Score(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim <= 0 {
		return 0
	}
	return sim * 100
}
