package normalizer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/resume-matcher/backend/internal/normalizer"
)

func TestNormalizeLowercasesAndStripsPunctuation(t *testing.T) {
	n := normalizer.NewEnglish()

	tokens := n.Normalize("Hello, World!")

	assert.Equal(t, []string{"hello", "world"}, tokens)
}

func TestNormalizeRemovesStopwords(t *testing.T) {
	n := normalizer.NewEnglish()

	tokens := n.Normalize("the cat and the hat")

	assert.Equal(t, []string{"cat", "hat"}, tokens)
}

func TestNormalizeStems(t *testing.T) {
	n := normalizer.NewEnglish()

	assert.Equal(t, []string{"run"}, n.Normalize("running"))
	assert.Equal(t, []string{"develop"}, n.Normalize("developing"))
}

func TestNormalizeIsIdempotent(t *testing.T) {
	n := normalizer.NewEnglish()

	first := n.Normalize("running quickly through testing")
	second := n.Normalize(strings.Join(first, " "))

	assert.Equal(t, first, second)
}

func TestNormalizeIsDeterministic(t *testing.T) {
	n := normalizer.NewEnglish()
	text := "Senior Python developer with 5 years of data engineering experience."

	first := n.Normalize(text)
	second := n.Normalize(text)

	assert.Equal(t, first, second)
}

func TestNormalizeEmptyInput(t *testing.T) {
	n := normalizer.NewEnglish()

	assert.Empty(t, n.Normalize(""))
	assert.Empty(t, n.Normalize("   \t\n"))
	assert.Empty(t, n.Normalize("!!! ??? ..."))
	assert.Empty(t, n.Normalize("the and is of"))
}

func TestNormalizeKeepsShortMeaningfulTokens(t *testing.T) {
	n := normalizer.NewEnglish()

	// "go" must survive; two-letter skill names matter in resumes.
	tokens := n.Normalize("Go developer")

	assert.Contains(t, tokens, "go")
}
