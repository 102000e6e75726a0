package match

import (
	"fmt"
	"math"
)

// CosineSimilarity calculates the cosine similarity between two vectors.
// A zero-norm vector on either side yields 0.0 instead of NaN. The
// vectors must share one vocabulary space; a length mismatch is an
// implementation bug and panics.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		panic(fmt.Sprintf("match: vector dimension mismatch: %d vs %d", len(a), len(b)))
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	score := dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))

	// Non-negative weights keep cosine inside [0,1]; clamp float noise.
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
