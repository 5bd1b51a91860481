package chi

import (
	"encoding/json"

	domapp "github.com/kailas-cloud/resumatch/internal/domain/application"
	domhistory "github.com/kailas-cloud/resumatch/internal/domain/history"
	domjob "github.com/kailas-cloud/resumatch/internal/domain/job"
	matchresult "github.com/kailas-cloud/resumatch/internal/domain/match/result"
	"github.com/kailas-cloud/resumatch/internal/domain/page"
	domresume "github.com/kailas-cloud/resumatch/internal/domain/resume"
	searchresult "github.com/kailas-cloud/resumatch/internal/domain/search/result"
	matchuc "github.com/kailas-cloud/resumatch/internal/usecase/match"
	searchuc "github.com/kailas-cloud/resumatch/internal/usecase/search"
)

// ListResponse is the envelope of every list endpoint.
type ListResponse[T any] struct {
	Items      []T  `json:"items"`
	NextOffset *int `json:"next_offset"`
	Total      int  `json:"total"`
}

func listResponse[T, U any](p page.Page[T], fn func(T) U) ListResponse[U] {
	m := page.Map(p, fn)
	return ListResponse[U]{Items: m.Items, NextOffset: m.NextOffset, Total: m.Total}
}

// ResumeResponse describes a stored resume. Content is set on single reads.
type ResumeResponse struct {
	ID        string `json:"id"`
	OwnerID   string `json:"owner_id"`
	Filename  string `json:"filename"`
	Format    string `json:"format"`
	CreatedAt int64  `json:"created_at"`
	Content   string `json:"content,omitempty"`
}

func resumeToResponse(r domresume.Resume) ResumeResponse {
	return ResumeResponse{
		ID: r.ID(), OwnerID: r.OwnerID(), Filename: r.Filename(),
		Format: string(r.Format()), CreatedAt: r.CreatedAt(),
	}
}

func resumeWithContent(r domresume.Resume) ResumeResponse {
	resp := resumeToResponse(r)
	resp.Content = r.Content()
	return resp
}

// CreateJobRequest is the body of POST /jobs.
type CreateJobRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
}

// JobResponse describes a job posting.
type JobResponse struct {
	ID           string `json:"id"`
	RecruiterID  string `json:"recruiter_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	CreatedAt    int64  `json:"created_at"`
}

func jobToResponse(j domjob.Job) JobResponse {
	return JobResponse{
		ID: j.ID(), RecruiterID: j.RecruiterID(), Title: j.Title(),
		Description: j.Description(), Requirements: j.Requirements(), CreatedAt: j.CreatedAt(),
	}
}

// ApplyRequest is the body of POST /jobs/{id}/applications.
type ApplyRequest struct {
	ResumeID string `json:"resume_id"`
}

// ApplicationResponse describes a job application.
type ApplicationResponse struct {
	ID          string `json:"id"`
	JobID       string `json:"job_id"`
	ResumeID    string `json:"resume_id"`
	ApplicantID string `json:"applicant_id"`
	CreatedAt   int64  `json:"created_at"`
}

func applicationToResponse(a domapp.Application) ApplicationResponse {
	return ApplicationResponse{
		ID: a.ID(), JobID: a.JobID(), ResumeID: a.ResumeID(),
		ApplicantID: a.ApplicantID(), CreatedAt: a.CreatedAt(),
	}
}

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	Query string `json:"query"`
	K     *int   `json:"k,omitempty"`
}

// SearchHit is one ranked resume.
type SearchHit struct {
	ResumeID string   `json:"resume_id"`
	OwnerID  string   `json:"owner_id"`
	Filename string   `json:"filename"`
	Score    float64  `json:"score"`
	Tier     string   `json:"tier"`
	Snippets []string `json:"snippets"`
}

// SearchResponse is the body returned by POST /search.
type SearchResponse struct {
	Query      string      `json:"query"`
	Results    []SearchHit `json:"results"`
	TotalFound int         `json:"total_found"`
}

func searchToResponse(out searchuc.Output) SearchResponse {
	hits := make([]SearchHit, len(out.Results))
	for i := range out.Results {
		hits[i] = searchHit(&out.Results[i])
	}
	return SearchResponse{Query: out.Query, Results: hits, TotalFound: out.TotalFound}
}

func searchHit(r *searchresult.Result) SearchHit {
	return SearchHit{
		ResumeID: r.ResumeID(), OwnerID: r.OwnerID(), Filename: r.Filename(),
		Score: r.Score(), Tier: string(r.Tier()), Snippets: r.Snippets(),
	}
}

// MatchRequest is the body of POST /jobs/{id}/match.
type MatchRequest struct {
	TopN *int `json:"top_n,omitempty"`
}

// MatchHit is one resume ranked against a job.
type MatchHit struct {
	ResumeID            string   `json:"resume_id"`
	OwnerID             string   `json:"owner_id"`
	Filename            string   `json:"filename"`
	Score               float64  `json:"score"`
	Recommendation      string   `json:"recommendation"`
	Evidence            []string `json:"evidence"`
	MissingRequirements []string `json:"missing_requirements"`
}

// MatchResponse is the body returned by POST /jobs/{id}/match.
type MatchResponse struct {
	JobID    string     `json:"job_id"`
	JobTitle string     `json:"job_title"`
	Results  []MatchHit `json:"results"`
}

func matchToResponse(out matchuc.Output) MatchResponse {
	hits := make([]MatchHit, len(out.Results))
	for i := range out.Results {
		hits[i] = matchHit(&out.Results[i])
	}
	return MatchResponse{JobID: out.Job.ID(), JobTitle: out.Job.Title(), Results: hits}
}

func matchHit(r *matchresult.Result) MatchHit {
	return MatchHit{
		ResumeID: r.ResumeID(), OwnerID: r.OwnerID(), Filename: r.Filename(),
		Score: r.Score(), Recommendation: string(r.Recommendation()),
		Evidence: r.Evidence(), MissingRequirements: r.MissingRequirements(),
	}
}

// HistoryResponse describes an audit entry. Results is set on single reads.
type HistoryResponse struct {
	ID          string          `json:"id"`
	Kind        string          `json:"kind"`
	Subject     string          `json:"subject"`
	UserID      string          `json:"user_id"`
	ResultCount int             `json:"result_count"`
	CreatedAt   int64           `json:"created_at"`
	Results     json.RawMessage `json:"results,omitempty"`
}

func historyToResponse(e domhistory.Entry) HistoryResponse {
	return HistoryResponse{
		ID: e.ID(), Kind: string(e.Kind()), Subject: e.Subject(), UserID: e.UserID(),
		ResultCount: e.ResultCount(), CreatedAt: e.CreatedAt(),
	}
}

func historyWithResults(e domhistory.Entry) HistoryResponse {
	resp := historyToResponse(e)
	resp.Results = e.Results()
	return resp
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
