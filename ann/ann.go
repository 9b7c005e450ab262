// Package ann implements bounded-k approximate nearest neighbor search
// over node vectors, combining cosine similarity with the candidate's
// density.
package ann

import (
	"sort"

	"github.com/luxfi/parity/overlay"
	"github.com/luxfi/parity/vector"
)

// Result is one entry of a FindKNearest result set.
type Result struct {
	ID            int
	Similarity    float64
	CombinedScore float64
}

// FindKNearest returns up to k results ordered by descending combined
// score, excluding queryID itself. combined_score is
// similarity·coherence(query) + density(candidate). Ties are broken by
// lower id. k <= 0 or an unknown queryID yields an empty, non-truncated
// result. truncated reports whether fewer than k candidates existed.
func FindKNearest(tbl *overlay.Table, queryID, k int) (results []Result, truncated bool) {
	if k <= 0 {
		return nil, false
	}
	nodes := tbl.Snapshot()
	var query *overlay.Snapshot
	for i := range nodes {
		if nodes[i].ID == queryID {
			query = &nodes[i]
			break
		}
	}
	if query == nil {
		return nil, false
	}

	candidates := make([]Result, 0, len(nodes)-1)
	for _, n := range nodes {
		if n.ID == queryID {
			continue
		}
		sim := vector.Cosine(query.Vector, n.Vector)
		score := sim*query.Coherence + n.Density
		candidates = append(candidates, Result{ID: n.ID, Similarity: sim, CombinedScore: score})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].CombinedScore != candidates[j].CombinedScore {
			return candidates[i].CombinedScore > candidates[j].CombinedScore
		}
		return candidates[i].ID < candidates[j].ID
	})

	if k > len(candidates) {
		return candidates, true
	}
	return candidates[:k], false
}
