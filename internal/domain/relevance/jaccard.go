package relevance

// Jaccard returns |A∩B| / |A∪B| over the distinct tokens of a and b.
// Two empty inputs score 0.
func Jaccard(a, b []string) float64 {
	setA := toSet(a)
	setB := toSet(b)

	small, large := setA, setB
	if len(small) > len(large) {
		small, large = large, small
	}

	inter := 0
	for t := range small {
		if _, ok := large[t]; ok {
			inter++
		}
	}

	union := len(setA) + len(setB) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func toSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
