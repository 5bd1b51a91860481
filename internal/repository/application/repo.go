package application

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kailas-cloud/resumatch/internal/db"
	"github.com/kailas-cloud/resumatch/internal/domain"
	domapp "github.com/kailas-cloud/resumatch/internal/domain/application"
)

// store is the consumer interface for applications (ISP).
type store interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repo implements usecase/application.Repository.
type Repo struct {
	store store
}

// New creates an application repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Create inserts an application. A second application of the same resume
// to the same job yields domain.ErrAlreadyApplied; a vanished job or resume
// yields domain.ErrNotFound.
func (r *Repo) Create(ctx context.Context, a *domapp.Application) error {
	_, err := r.store.ExecContext(ctx,
		`INSERT INTO applications (id, job_id, resume_id, applicant_id, created_at) VALUES (?, ?, ?, ?, ?)`,
		a.ID(), a.JobID(), a.ResumeID(), a.ApplicantID(), a.CreatedAt(),
	)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, db.ErrUniqueViolation):
		return fmt.Errorf("job %s resume %s: %w", a.JobID(), a.ResumeID(), domain.ErrAlreadyApplied)
	case errors.Is(err, db.ErrForeignViolation):
		return fmt.Errorf("job %s resume %s: %w", a.JobID(), a.ResumeID(), domain.ErrNotFound)
	default:
		return fmt.Errorf("insert application: %w", err)
	}
}

// ListByJob returns one page of applications for a job, oldest first.
func (r *Repo) ListByJob(ctx context.Context, jobID string, offset, limit int) ([]domapp.Application, int, error) {
	var total int
	if err := r.store.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM applications WHERE job_id = ?`, jobID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count applications: %w", err)
	}
	if total == 0 || offset >= total {
		return []domapp.Application{}, total, nil
	}

	rows, err := r.store.QueryContext(ctx,
		`SELECT id, job_id, resume_id, applicant_id, created_at FROM applications
		 WHERE job_id = ? ORDER BY created_at ASC, id ASC LIMIT ? OFFSET ?`,
		jobID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	apps := make([]domapp.Application, 0, limit)
	for rows.Next() {
		var (
			id, job, resume, applicant string
			createdAt                  int64
		)
		if err := rows.Scan(&id, &job, &resume, &applicant, &createdAt); err != nil {
			return nil, 0, fmt.Errorf("scan application: %w", err)
		}
		apps = append(apps, domapp.Reconstruct(id, job, resume, applicant, createdAt))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate applications: %w", err)
	}
	return apps, total, nil
}
