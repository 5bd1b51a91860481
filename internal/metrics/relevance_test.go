package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterRelevanceMetrics_Idempotent(t *testing.T) {
	RegisterRelevanceMetrics()
	RegisterRelevanceMetrics() // second call must not panic on duplicate registration
}

func TestObserveRanking(t *testing.T) {
	before := testutil.CollectAndCount(RankingDuration)
	ObserveRanking(PipelineMatch, 12, 3, 0.002)

	if testutil.CollectAndCount(RankingDuration) < max(before, 1) {
		t.Error("expected ranking duration series")
	}
	if testutil.CollectAndCount(CandidatesScanned) == 0 {
		t.Error("expected candidates scanned series")
	}
	if testutil.CollectAndCount(ResultsReturned) == 0 {
		t.Error("expected results returned series")
	}
}
