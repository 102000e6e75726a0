package normalizer

import (
	_ "embed"
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
	"gopkg.in/yaml.v3"
)

// Normalizer turns raw text into a sequence of normalized tokens.
// Implementations must be deterministic and side-effect free.
type Normalizer interface {
	Normalize(text string) []string
}

//go:embed stopwords.yaml
var stopwordsAsset []byte

// English implements the default pipeline for English text:
// lowercase -> tokenize on word boundaries -> stopword filter -> stem.
type English struct {
	stopwords map[string]struct{}
}

func NewEnglish() *English {
	return &English{stopwords: loadStopwords()}
}

func loadStopwords() map[string]struct{} {
	var words []string
	if err := yaml.Unmarshal(stopwordsAsset, &words); err != nil {
		// The asset is compiled into the binary; failing to parse it
		// is a build defect, not a runtime condition.
		panic("normalizer: invalid stopwords asset: " + err.Error())
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Normalize converts raw text into normalized tokens. Empty input
// (or input that is all punctuation/stopwords) yields an empty slice.
func (n *English) Normalize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		if _, stop := n.stopwords[field]; stop {
			continue
		}
		tokens = append(tokens, english.Stem(field, true))
	}
	return tokens
}
