package resume

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kailas-cloud/resumatch/internal/domain"
	domresume "github.com/kailas-cloud/resumatch/internal/domain/resume"
)

// store is the consumer interface for resumes (ISP).
type store interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const columns = `id, owner_id, filename, format, content, created_at`

// Repo implements the resume repositories used by the resume, search and match services.
type Repo struct {
	store store
}

// New creates a resume repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Create inserts a resume.
func (r *Repo) Create(ctx context.Context, res *domresume.Resume) error {
	_, err := r.store.ExecContext(ctx,
		`INSERT INTO resumes (`+columns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		res.ID(), res.OwnerID(), res.Filename(), string(res.Format()), res.Content(), res.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("insert resume %s: %w", res.ID(), err)
	}
	return nil
}

// Get returns a resume by ID.
func (r *Repo) Get(ctx context.Context, id string) (domresume.Resume, error) {
	row := r.store.QueryRowContext(ctx, `SELECT `+columns+` FROM resumes WHERE id = ?`, id)
	res, err := scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domresume.Resume{}, fmt.Errorf("resume %s: %w", id, domain.ErrNotFound)
		}
		return domresume.Resume{}, fmt.Errorf("select resume %s: %w", id, err)
	}
	return res, nil
}

// List returns one page of resumes, newest first. An empty ownerID lists everyone's.
func (r *Repo) List(ctx context.Context, ownerID string, offset, limit int) ([]domresume.Resume, int, error) {
	where, args := ownerFilter(ownerID)

	var total int
	if err := r.store.QueryRowContext(ctx, `SELECT COUNT(*) FROM resumes`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count resumes: %w", err)
	}
	if total == 0 || offset >= total {
		return []domresume.Resume{}, total, nil
	}

	rows, err := r.store.QueryContext(ctx,
		`SELECT `+columns+` FROM resumes`+where+` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		append(args, limit, offset)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list resumes: %w", err)
	}
	items, err := collect(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("list resumes: %w", err)
	}
	return items, total, nil
}

// Candidates loads every resume visible to a ranking run in retrieval order
// (upload time, then ID). An empty ownerID loads all resumes.
func (r *Repo) Candidates(ctx context.Context, ownerID string) ([]domresume.Resume, error) {
	where, args := ownerFilter(ownerID)
	rows, err := r.store.QueryContext(ctx,
		`SELECT `+columns+` FROM resumes`+where+` ORDER BY created_at ASC, id ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}
	items, err := collect(rows)
	if err != nil {
		return nil, fmt.Errorf("load candidates: %w", err)
	}
	return items, nil
}

// Delete removes a resume; applications referencing it cascade.
func (r *Repo) Delete(ctx context.Context, id string) error {
	res, err := r.store.ExecContext(ctx, `DELETE FROM resumes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete resume %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete resume %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("resume %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func ownerFilter(ownerID string) (string, []any) {
	if ownerID == "" {
		return "", nil
	}
	return ` WHERE owner_id = ?`, []any{ownerID}
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (domresume.Resume, error) {
	var (
		id, owner, filename, format, content string
		createdAt                            int64
	)
	if err := s.Scan(&id, &owner, &filename, &format, &content, &createdAt); err != nil {
		return domresume.Resume{}, err //nolint:wrapcheck // callers wrap with context
	}
	return domresume.Reconstruct(id, owner, filename, domresume.Format(format), content, createdAt), nil
}

func collect(rows *sql.Rows) ([]domresume.Resume, error) {
	defer rows.Close()

	items := make([]domresume.Resume, 0)
	for rows.Next() {
		res, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan resume: %w", err)
		}
		items = append(items, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resumes: %w", err)
	}
	return items, nil
}
