package application

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/resumatch/internal/domain"
	domapp "github.com/kailas-cloud/resumatch/internal/domain/application"
	"github.com/kailas-cloud/resumatch/internal/domain/identity"
	"github.com/kailas-cloud/resumatch/internal/domain/page"
	"github.com/kailas-cloud/resumatch/internal/domain/role"
)

// Service handles job applications.
type Service struct {
	repo         Repository
	jobs         JobReader
	resumes      ResumeReader
	defaultLimit int
	maxLimit     int
	now          func() time.Time
}

// New creates an application service.
func New(repo Repository, jobs JobReader, resumes ResumeReader) *Service {
	return &Service{
		repo: repo, jobs: jobs, resumes: resumes,
		defaultLimit: page.DefaultLimit, maxLimit: page.MaxLimit, now: time.Now,
	}
}

// WithPagination sets list limits.
func (s *Service) WithPagination(defaultLimit, maxLimit int) *Service {
	s.defaultLimit = defaultLimit
	s.maxLimit = maxLimit
	return s
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Apply submits one of the caller's resumes to a job. Applying twice with
// the same resume returns domain.ErrAlreadyApplied.
func (s *Service) Apply(
	ctx context.Context, caller identity.Identity, jobID, resumeID string,
) (domapp.Application, error) {
	if caller.Role != role.User {
		return domapp.Application{}, fmt.Errorf("role %q cannot apply: %w", caller.Role, domain.ErrForbidden)
	}
	app, err := domapp.New(jobID, resumeID, caller.UserID, s.now())
	if err != nil {
		return domapp.Application{}, err
	}

	if _, err := s.jobs.Get(ctx, app.JobID()); err != nil {
		return domapp.Application{}, fmt.Errorf("get job: %w", err)
	}
	res, err := s.resumes.Get(ctx, app.ResumeID())
	if err != nil {
		return domapp.Application{}, fmt.Errorf("get resume: %w", err)
	}
	if !caller.Owns(res.OwnerID()) {
		return domapp.Application{}, fmt.Errorf("resume %s: %w", resumeID, domain.ErrForbidden)
	}

	if err := s.repo.Create(ctx, &app); err != nil {
		return domapp.Application{}, fmt.Errorf("create application: %w", err)
	}
	return app, nil
}

// ListForJob pages through a job's applications, oldest first.
// Only the posting recruiter or an admin may list them.
func (s *Service) ListForJob(
	ctx context.Context, caller identity.Identity, jobID string, offset, limit int,
) (page.Page[domapp.Application], error) {
	params, err := page.NewParams(offset, limit, s.defaultLimit, s.maxLimit)
	if err != nil {
		return page.Page[domapp.Application]{}, err
	}

	j, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return page.Page[domapp.Application]{}, fmt.Errorf("get job: %w", err)
	}
	if !caller.IsAdmin() && !caller.Owns(j.RecruiterID()) {
		return page.Page[domapp.Application]{}, fmt.Errorf("job %s applications: %w", jobID, domain.ErrForbidden)
	}

	items, total, err := s.repo.ListByJob(ctx, jobID, params.Offset, params.Limit)
	if err != nil {
		return page.Page[domapp.Application]{}, fmt.Errorf("list applications: %w", err)
	}
	return page.New(items, params.Offset, total), nil
}
