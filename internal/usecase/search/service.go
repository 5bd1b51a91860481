package search

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/resumatch/internal/domain/identity"
	domhistory "github.com/kailas-cloud/resumatch/internal/domain/history"
	"github.com/kailas-cloud/resumatch/internal/domain/relevance"
	domresume "github.com/kailas-cloud/resumatch/internal/domain/resume"
	"github.com/kailas-cloud/resumatch/internal/domain/search/request"
	"github.com/kailas-cloud/resumatch/internal/domain/search/result"
	"github.com/kailas-cloud/resumatch/internal/metrics"
)

// DefaultSnippetsPerResult is the snippet count per hit unless overridden.
const DefaultSnippetsPerResult = 3

// Output is one ranked search response.
type Output struct {
	Query   string
	Results []result.Result
	// TotalFound counts candidates above the relevance floor before truncation to k.
	TotalFound int
}

// record is the history representation of one search hit.
type record struct {
	ResumeID string   `json:"resume_id"`
	Filename string   `json:"filename"`
	Score    float64  `json:"score"`
	Tier     string   `json:"tier"`
	Snippets []string `json:"snippets"`
}

// Service ranks resumes against free-text queries.
type Service struct {
	resumes  CandidateSource
	audit    Auditor
	defaultK int
	maxK     int
	snippets int
}

// New creates a search service. audit may be nil.
func New(resumes CandidateSource, audit Auditor) *Service {
	return &Service{
		resumes:  resumes,
		audit:    audit,
		defaultK: request.DefaultK,
		maxK:     request.MaxK,
		snippets: DefaultSnippetsPerResult,
	}
}

// WithLimits overrides request bounds and the snippet count.
// Non-positive values keep the current setting.
func (s *Service) WithLimits(defaultK, maxK, snippetsPerResult int) *Service {
	if defaultK > 0 {
		s.defaultK = defaultK
	}
	if maxK > 0 {
		s.maxK = maxK
	}
	if snippetsPerResult > 0 {
		s.snippets = snippetsPerResult
	}
	return s
}

// Search scores every resume visible to caller by Jaccard similarity to query,
// keeps those above the floor and returns the best k with redacted snippets.
func (s *Service) Search(ctx context.Context, caller identity.Identity, query string, k int) (Output, error) {
	req, err := request.New(query, k, s.defaultK, s.maxK)
	if err != nil {
		return Output{}, err
	}

	candidates, err := s.resumes.Candidates(ctx, scope(caller))
	if err != nil {
		return Output{}, fmt.Errorf("load candidates: %w", err)
	}

	start := time.Now()
	queryTokens := relevance.Tokenize(req.Query())
	scored := make([]relevance.Scored[domresume.Resume], len(candidates))
	for i, c := range candidates {
		scored[i] = relevance.Scored[domresume.Resume]{
			Item:  c,
			Score: relevance.Jaccard(queryTokens, relevance.Tokenize(c.Content())),
		}
	}
	qualifying := relevance.Rank(scored, relevance.AboveSearchFloor, 0)
	ranked := qualifying
	if len(ranked) > req.K() {
		ranked = ranked[:req.K()]
	}

	results := make([]result.Result, len(ranked))
	for i, r := range ranked {
		// Redact before splitting: sentence boundaries cut through dotted emails and phones.
		text := relevance.Redact(r.Item.Content(), caller.Role)
		results[i] = result.New(
			r.Item.ID(), r.Item.OwnerID(), r.Item.Filename(), r.Score,
			relevance.Snippets(text, req.Query(), s.snippets),
		)
	}
	metrics.ObserveRanking(metrics.PipelineSearch, len(candidates), len(results), time.Since(start).Seconds())

	if s.audit != nil {
		s.audit.Record(ctx, domhistory.KindSearch, req.Query(), caller.UserID, len(results), records(results))
	}

	return Output{Query: req.Query(), Results: results, TotalFound: len(qualifying)}, nil
}

// scope returns the owner filter for candidate loading.
func scope(caller identity.Identity) string {
	if caller.Role.SeesAllResumes() {
		return ""
	}
	return caller.UserID
}

func records(results []result.Result) []record {
	out := make([]record, len(results))
	for i, r := range results {
		out[i] = record{
			ResumeID: r.ResumeID(),
			Filename: r.Filename(),
			Score:    r.Score(),
			Tier:     string(r.Tier()),
			Snippets: r.Snippets(),
		}
	}
	return out
}
