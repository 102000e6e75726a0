package match

import (
	"math"
)

// Vectorizer turns normalized token sequences into comparable vectors.
type Vectorizer interface {
	Fit(docs [][]string)
	Transform(tokens []string) []float64
}

// TFIDFVectorizer implements Term Frequency - Inverse Document Frequency
// with smoothed IDF and L2-normalized output vectors.
type TFIDFVectorizer struct {
	Vocabulary map[string]int
	IDF        map[string]float64
}

func NewTFIDFVectorizer() *TFIDFVectorizer {
	return &TFIDFVectorizer{
		Vocabulary: make(map[string]int),
		IDF:        make(map[string]float64),
	}
}

// Fit analyzes the corpus to build vocabulary and IDF stats. Vocabulary
// indices are assigned in first-seen order and stay fixed until the
// next Fit.
func (v *TFIDFVectorizer) Fit(docs [][]string) {
	docCount := float64(len(docs))
	wordDocCounts := make(map[string]int)

	// 1. Build Vocabulary and count document occurrences
	for _, tokens := range docs {
		seenInDoc := make(map[string]bool)
		for _, token := range tokens {
			if !seenInDoc[token] {
				wordDocCounts[token]++
				seenInDoc[token] = true
			}
			if _, exists := v.Vocabulary[token]; !exists {
				v.Vocabulary[token] = len(v.Vocabulary)
			}
		}
	}

	// 2. Calculate IDF
	for word, count := range wordDocCounts {
		// idf = ln((1 + N) / (1 + df)) + 1
		// Smoothing keeps idf strictly positive, even for terms that
		// occur in every document.
		v.IDF[word] = math.Log((1+docCount)/(1+float64(count))) + 1
	}
}

// Transform converts a token sequence to an L2-normalized TF-IDF vector
// over the fitted vocabulary. Out-of-vocabulary tokens are ignored; a
// document with no in-vocabulary tokens yields a zero vector.
func (v *TFIDFVectorizer) Transform(tokens []string) []float64 {
	vector := make([]float64, len(v.Vocabulary))

	// Calculate Term Frequency (TF) as the raw token count
	tf := make(map[string]float64)
	for _, token := range tokens {
		tf[token]++
	}

	// Calculate TF-IDF
	for token, count := range tf {
		if idx, exists := v.Vocabulary[token]; exists {
			vector[idx] = count * v.IDF[token]
		}
	}

	// L2 normalization; a zero vector stays zero rather than dividing
	// by a zero norm.
	var sumSquares float64
	for _, w := range vector {
		sumSquares += w * w
	}
	if sumSquares == 0 {
		return vector
	}
	norm := math.Sqrt(sumSquares)
	for i := range vector {
		vector[i] /= norm
	}

	return vector
}
