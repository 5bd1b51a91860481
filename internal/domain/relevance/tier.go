package relevance

// Search relevance thresholds.
const (
	// SearchFloor is the score a search hit must exceed to be returned.
	SearchFloor = 0.01

	highTierThreshold   = 0.1
	mediumTierThreshold = 0.05
)

// Match recommendation thresholds.
const (
	strongThreshold   = 0.3
	moderateThreshold = 0.1
)

// Tier is the coarse relevance band of a search hit.
type Tier string

// Search tiers.
const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// SearchTier buckets a Jaccard score.
func SearchTier(score float64) Tier {
	switch {
	case score > highTierThreshold:
		return TierHigh
	case score > mediumTierThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

// Recommendation is the coarse verdict of a job match.
type Recommendation string

// Match recommendations.
const (
	Strong   Recommendation = "strong"
	Moderate Recommendation = "moderate"
	Weak     Recommendation = "weak"
)

// Recommend buckets a keyword-overlap score.
func Recommend(score float64) Recommendation {
	switch {
	case score > strongThreshold:
		return Strong
	case score > moderateThreshold:
		return Moderate
	default:
		return Weak
	}
}

// AboveSearchFloor is the keep predicate for free-text search.
func AboveSearchFloor(score float64) bool { return score > SearchFloor }

// Positive is the keep predicate for job matching.
func Positive(score float64) bool { return score > 0 }
