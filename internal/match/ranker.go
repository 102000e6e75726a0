package match

import (
	"math"
	"sort"
)

// scoreEpsilon is the distance within which two scores count as equal,
// so floating-point noise cannot reorder ties.
const scoreEpsilon = 1e-12

// Result is a ranked resume with its similarity score in [0, 1].
type Result struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Rank sorts results by descending score. Equal scores (within epsilon)
// keep their original input order, and every input appears exactly once
// in the output.
func Rank(results []Result) []Result {
	ranked := make([]Result, len(results))
	copy(ranked, results)

	sort.SliceStable(ranked, func(i, j int) bool {
		if math.Abs(ranked[i].Score-ranked[j].Score) <= scoreEpsilon {
			return false
		}
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}
