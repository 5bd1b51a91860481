package match

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/resumatch/internal/domain"
	domhistory "github.com/kailas-cloud/resumatch/internal/domain/history"
	"github.com/kailas-cloud/resumatch/internal/domain/identity"
	domjob "github.com/kailas-cloud/resumatch/internal/domain/job"
	"github.com/kailas-cloud/resumatch/internal/domain/match/result"
	"github.com/kailas-cloud/resumatch/internal/domain/relevance"
	domresume "github.com/kailas-cloud/resumatch/internal/domain/resume"
	"github.com/kailas-cloud/resumatch/internal/metrics"
)

// Defaults for the number of returned candidates.
const (
	DefaultTopN = 10
	MaxTopN     = 20
)

// Output is one ranked match response.
type Output struct {
	Job     domjob.Job
	Results []result.Result
}

type record struct {
	ResumeID            string   `json:"resume_id"`
	Filename            string   `json:"filename"`
	Score               float64  `json:"score"`
	Recommendation      string   `json:"recommendation"`
	Evidence            []string `json:"evidence"`
	MissingRequirements []string `json:"missing_requirements"`
}

// Service ranks resumes against a job posting by keyword overlap.
type Service struct {
	jobs        JobReader
	resumes     CandidateSource
	audit       Auditor
	defaultTopN int
	maxTopN     int
}

// New creates a match service. audit may be nil.
func New(jobs JobReader, resumes CandidateSource, audit Auditor) *Service {
	return &Service{
		jobs:        jobs,
		resumes:     resumes,
		audit:       audit,
		defaultTopN: DefaultTopN,
		maxTopN:     MaxTopN,
	}
}

// WithLimits overrides the default and maximum top_n.
func (s *Service) WithLimits(defaultTopN, maxTopN int) *Service {
	if defaultTopN > 0 {
		s.defaultTopN = defaultTopN
	}
	if maxTopN > 0 {
		s.maxTopN = maxTopN
	}
	return s
}

// Match ranks the resumes visible to caller against the job. topN of zero
// takes the default; values above the maximum are clamped.
func (s *Service) Match(ctx context.Context, caller identity.Identity, jobID string, topN int) (Output, error) {
	jobID = strings.TrimSpace(jobID)
	if jobID == "" {
		return Output{}, domain.NewFieldRequired("job_id")
	}
	limit, err := s.limit(topN)
	if err != nil {
		return Output{}, err
	}

	job, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return Output{}, fmt.Errorf("get job: %w", err)
	}

	ownerID := ""
	if !caller.Role.SeesAllResumes() {
		ownerID = caller.UserID
	}
	candidates, err := s.resumes.Candidates(ctx, ownerID)
	if err != nil {
		return Output{}, fmt.Errorf("load candidates: %w", err)
	}

	start := time.Now()
	jobText := job.CombinedText()
	type scoredResume struct {
		resume domresume.Resume
		match  relevance.KeywordMatch
	}
	scored := make([]relevance.Scored[scoredResume], len(candidates))
	for i, c := range candidates {
		m := relevance.MatchKeywords(jobText, c.Content())
		scored[i] = relevance.Scored[scoredResume]{Item: scoredResume{resume: c, match: m}, Score: m.Score}
	}
	ranked := relevance.Rank(scored, relevance.Positive, limit)

	results := make([]result.Result, len(ranked))
	for i, r := range ranked {
		res := result.New(r.Item.resume.ID(), r.Item.resume.OwnerID(), r.Item.resume.Filename(), r.Item.match)
		results[i] = res.WithEvidence(
			relevance.RedactAll(res.Evidence(), caller.Role),
			relevance.RedactAll(res.MissingRequirements(), caller.Role),
		)
	}
	metrics.ObserveRanking(metrics.PipelineMatch, len(candidates), len(results), time.Since(start).Seconds())

	if s.audit != nil {
		s.audit.Record(ctx, domhistory.KindMatch, job.ID(), caller.UserID, len(results), records(results))
	}

	return Output{Job: job, Results: results}, nil
}

func (s *Service) limit(topN int) (int, error) {
	switch {
	case topN < 0:
		return 0, domain.NewInvalidField("top_n", fmt.Sprintf("top_n must be between 1 and %d", s.maxTopN))
	case topN == 0:
		return min(s.defaultTopN, s.maxTopN), nil
	default:
		return min(topN, s.maxTopN), nil
	}
}

func records(results []result.Result) []record {
	out := make([]record, len(results))
	for i, r := range results {
		out[i] = record{
			ResumeID:            r.ResumeID(),
			Filename:            r.Filename(),
			Score:               r.Score(),
			Recommendation:      string(r.Recommendation()),
			Evidence:            r.Evidence(),
			MissingRequirements: r.MissingRequirements(),
		}
	}
	return out
}
