package job

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kailas-cloud/resumatch/internal/domain"
	domjob "github.com/kailas-cloud/resumatch/internal/domain/job"
)

// store is the consumer interface for jobs (ISP).
type store interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const columns = `id, recruiter_id, title, description, requirements, created_at`

// Repo implements usecase/job.Repository and the job reader used by matching.
type Repo struct {
	store store
}

// New creates a job repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Create inserts a job posting.
func (r *Repo) Create(ctx context.Context, j *domjob.Job) error {
	_, err := r.store.ExecContext(ctx,
		`INSERT INTO jobs (`+columns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		j.ID(), j.RecruiterID(), j.Title(), j.Description(), j.Requirements(), j.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("insert job %s: %w", j.ID(), err)
	}
	return nil
}

// Get returns a job by ID.
func (r *Repo) Get(ctx context.Context, id string) (domjob.Job, error) {
	var (
		jid, recruiter, title, desc, req string
		createdAt                        int64
	)
	err := r.store.QueryRowContext(ctx, `SELECT `+columns+` FROM jobs WHERE id = ?`, id).
		Scan(&jid, &recruiter, &title, &desc, &req, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domjob.Job{}, fmt.Errorf("job %s: %w", id, domain.ErrNotFound)
		}
		return domjob.Job{}, fmt.Errorf("select job %s: %w", id, err)
	}
	return domjob.Reconstruct(jid, recruiter, title, desc, req, createdAt), nil
}

// List returns one page of jobs, newest first.
func (r *Repo) List(ctx context.Context, offset, limit int) ([]domjob.Job, int, error) {
	var total int
	if err := r.store.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}
	if total == 0 || offset >= total {
		return []domjob.Job{}, total, nil
	}

	rows, err := r.store.QueryContext(ctx,
		`SELECT `+columns+` FROM jobs ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]domjob.Job, 0, limit)
	for rows.Next() {
		var (
			id, recruiter, title, desc, req string
			createdAt                       int64
		)
		if err := rows.Scan(&id, &recruiter, &title, &desc, &req, &createdAt); err != nil {
			return nil, 0, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, domjob.Reconstruct(id, recruiter, title, desc, req, createdAt))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate jobs: %w", err)
	}
	return jobs, total, nil
}

// Delete removes a job; its applications cascade.
func (r *Repo) Delete(ctx context.Context, id string) error {
	res, err := r.store.ExecContext(ctx, `DELETE FROM jobs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete job %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete job %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("job %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
