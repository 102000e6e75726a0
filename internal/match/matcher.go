package match

import (
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/resume-matcher/backend/internal/normalizer"
)

// Resume is a named input document.
type Resume struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Matcher ranks resumes against a job description in a TF-IDF vector
// space shared by all documents of a single call. It holds no state
// between calls; the vocabulary and vectors live and die inside Match.
type Matcher struct {
	Normalizer normalizer.Normalizer
	Logger     *logrus.Entry
	Workers    int
}

func NewMatcher(n normalizer.Normalizer, logger *logrus.Entry, workers int) *Matcher {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Matcher{
		Normalizer: n,
		Logger:     logger,
		Workers:    workers,
	}
}

// Match scores every resume against the job description and returns the
// full ranked list. An empty resume list yields an empty result; a
// resume with no extractable tokens scores 0.0 but is never dropped.
func (m *Matcher) Match(resumes []Resume, jobDescription string) []Result {
	if len(resumes) == 0 {
		return []Result{}
	}

	// Normalize once; the same token sequences feed Fit and Transform.
	resumeTokens := make([][]string, len(resumes))
	for i, r := range resumes {
		resumeTokens[i] = m.Normalizer.Normalize(r.Content)
	}
	queryTokens := m.Normalizer.Normalize(jobDescription)

	// IDF is fitted on resumes plus the query, so the query's own term
	// distribution participates in the weighting.
	corpus := make([][]string, 0, len(resumes)+1)
	corpus = append(corpus, resumeTokens...)
	corpus = append(corpus, queryTokens)

	vectorizer := NewTFIDFVectorizer()
	vectorizer.Fit(corpus)

	queryVector := vectorizer.Transform(queryTokens)

	// The vocabulary is frozen after Fit, so per-resume vectorization
	// is safe to fan out.
	vectors := make([][]float64, len(resumes))
	var g errgroup.Group
	g.SetLimit(m.Workers)
	for i := range resumes {
		i := i
		g.Go(func() error {
			vectors[i] = vectorizer.Transform(resumeTokens[i])
			return nil
		})
	}
	_ = g.Wait() // Transform cannot fail; the group only bounds fan-out

	results := make([]Result, len(resumes))
	for i, r := range resumes {
		results[i] = Result{
			Name:  r.Name,
			Score: CosineSimilarity(queryVector, vectors[i]),
		}
	}

	ranked := Rank(results)

	if m.Logger != nil {
		m.Logger.WithFields(logrus.Fields{
			"resumes":    len(resumes),
			"vocabulary": len(vectorizer.Vocabulary),
		}).Debug("Ranked resumes against job description")
	}

	return ranked
}
