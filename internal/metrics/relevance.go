package metrics

import "github.com/prometheus/client_golang/prometheus"

// Pipeline labels.
const (
	PipelineSearch = "search"
	PipelineMatch  = "match"
)

// Relevance Prometheus metrics.
var (
	RankingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ranking_duration_seconds",
			Help:      "Time spent scoring and ranking candidates",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"pipeline"},
	)

	CandidatesScanned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ranking_candidates_scanned",
			Help:      "Number of resumes scored per ranking run",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"pipeline"},
	)

	ResultsReturned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ranking_results_returned",
			Help:      "Number of results kept after floor and truncation",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
		[]string{"pipeline"},
	)

	AuditWriteFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audit_write_failures_total",
			Help:      "History writes that failed and were swallowed",
		},
		[]string{"pipeline"},
	)

	IdempotentReplaysTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "idempotent_replays_total",
			Help:      "Responses served from the idempotency cache",
		},
		[]string{"path"},
	)

	RateLimitedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_requests_total",
			Help:      "Requests rejected by the per-caller rate limiter",
		},
	)

	UploadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "resume_uploads_total",
			Help:      "Resume uploads by format and outcome",
		},
		[]string{"format", "status"}, // status: "ok" / "rejected"
	)
)

var relevanceMetricsRegistered bool

// RegisterRelevanceMetrics registers ranking, audit, idempotency, rate-limit
// and upload metrics. Must be called once from main.
func RegisterRelevanceMetrics() {
	if relevanceMetricsRegistered {
		return
	}
	prometheus.MustRegister(RankingDuration)
	prometheus.MustRegister(CandidatesScanned)
	prometheus.MustRegister(ResultsReturned)
	prometheus.MustRegister(AuditWriteFailuresTotal)
	prometheus.MustRegister(IdempotentReplaysTotal)
	prometheus.MustRegister(RateLimitedTotal)
	prometheus.MustRegister(UploadsTotal)
	relevanceMetricsRegistered = true
}

// ObserveRanking records one ranking run.
func ObserveRanking(pipeline string, scanned, returned int, seconds float64) {
	RankingDuration.WithLabelValues(pipeline).Observe(seconds)
	CandidatesScanned.WithLabelValues(pipeline).Observe(float64(scanned))
	ResultsReturned.WithLabelValues(pipeline).Observe(float64(returned))
}
