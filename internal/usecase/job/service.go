package job

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/resumatch/internal/domain"
	"github.com/kailas-cloud/resumatch/internal/domain/identity"
	domjob "github.com/kailas-cloud/resumatch/internal/domain/job"
	"github.com/kailas-cloud/resumatch/internal/domain/page"
)

// Service manages job postings.
type Service struct {
	repo         Repository
	defaultLimit int
	maxLimit     int
	now          func() time.Time
}

// New creates a job service.
func New(repo Repository) *Service {
	return &Service{repo: repo, defaultLimit: page.DefaultLimit, maxLimit: page.MaxLimit, now: time.Now}
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

// Create posts a job on behalf of a recruiter or admin.
func (s *Service) Create(
	ctx context.Context, caller identity.Identity, title, description, requirements string,
) (domjob.Job, error) {
	if !caller.Role.CanPostJobs() {
		return domjob.Job{}, fmt.Errorf("role %q cannot post jobs: %w", caller.Role, domain.ErrForbidden)
	}
	j, err := domjob.New(caller.UserID, title, description, requirements, s.now())
	if err != nil {
		return domjob.Job{}, err
	}
	if err := s.repo.Create(ctx, &j); err != nil {
		return domjob.Job{}, fmt.Errorf("create job: %w", err)
	}
	return j, nil
}

// Get returns a job by ID.
func (s *Service) Get(ctx context.Context, id string) (domjob.Job, error) {
	j, err := s.repo.Get(ctx, id)
	if err != nil {
		return domjob.Job{}, fmt.Errorf("get job: %w", err)
	}
	return j, nil
}

// List pages through all jobs, newest first.
func (s *Service) List(ctx context.Context, offset, limit int) (page.Page[domjob.Job], error) {
	params, err := page.NewParams(offset, limit, s.defaultLimit, s.maxLimit)
	if err != nil {
		return page.Page[domjob.Job]{}, err
	}
	items, total, err := s.repo.List(ctx, params.Offset, params.Limit)
	if err != nil {
		return page.Page[domjob.Job]{}, fmt.Errorf("list jobs: %w", err)
	}
	return page.New(items, params.Offset, total), nil
}

// Delete removes a job. Only the posting recruiter or an admin may delete it.
func (s *Service) Delete(ctx context.Context, caller identity.Identity, id string) error {
	j, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get job: %w", err)
	}
	if !caller.IsAdmin() && !caller.Owns(j.RecruiterID()) {
		return fmt.Errorf("job %s: %w", id, domain.ErrForbidden)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}
