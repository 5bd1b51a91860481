package relevance

import "sort"

// Scored pairs a candidate with its score.
type Scored[T any] struct {
	Item  T
	Score float64
}

// Rank keeps candidates whose score satisfies keep, orders them by score
// descending and truncates to limit. Equal scores keep their input
// (retrieval) order. limit <= 0 means no truncation.
func Rank[T any](candidates []Scored[T], keep func(float64) bool, limit int) []Scored[T] {
	kept := make([]Scored[T], 0, len(candidates))
	for _, c := range candidates {
		if keep(c.Score) {
			kept = append(kept, c)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score > kept[j].Score
	})

	if limit > 0 && len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}
