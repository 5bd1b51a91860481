package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kailas-cloud/resumatch/internal/domain"
	domhistory "github.com/kailas-cloud/resumatch/internal/domain/history"
)

// store is the consumer interface for history entries (ISP).
type store interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const columns = `id, kind, subject, user_id, result_count, results, idempotency_key, created_at`

// Repo implements the history writer and reader.
type Repo struct {
	store store
}

// New creates a history repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Create records an entry. Entries sharing (user, idempotency key) with an
// existing row are dropped silently; the return value reports whether a row
// was written.
func (r *Repo) Create(ctx context.Context, e *domhistory.Entry) (bool, error) {
	var key any
	if e.IdempotencyKey() != "" {
		key = e.IdempotencyKey()
	}
	res, err := r.store.ExecContext(ctx,
		`INSERT INTO history (`+columns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?) ON CONFLICT DO NOTHING`,
		e.ID(), string(e.Kind()), e.Subject(), e.UserID(), e.ResultCount(), string(e.Results()), key, e.CreatedAt(),
	)
	if err != nil {
		return false, fmt.Errorf("insert history %s: %w", e.ID(), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert history %s: %w", e.ID(), err)
	}
	return n > 0, nil
}

// Get returns an entry by ID.
func (r *Repo) Get(ctx context.Context, id string) (domhistory.Entry, error) {
	row := r.store.QueryRowContext(ctx, `SELECT `+columns+` FROM history WHERE id = ?`, id)
	e, err := scan(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domhistory.Entry{}, fmt.Errorf("history %s: %w", id, domain.ErrNotFound)
		}
		return domhistory.Entry{}, fmt.Errorf("select history %s: %w", id, err)
	}
	return e, nil
}

// List returns one page of entries, newest first. Empty userID or kind
// disable the respective filter.
func (r *Repo) List(
	ctx context.Context, userID string, kind domhistory.Kind, offset, limit int,
) ([]domhistory.Entry, int, error) {
	where := ` WHERE 1 = 1`
	var args []any
	if userID != "" {
		where += ` AND user_id = ?`
		args = append(args, userID)
	}
	if kind != "" {
		where += ` AND kind = ?`
		args = append(args, string(kind))
	}

	var total int
	if err := r.store.QueryRowContext(ctx, `SELECT COUNT(*) FROM history`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count history: %w", err)
	}
	if total == 0 || offset >= total {
		return []domhistory.Entry{}, total, nil
	}

	rows, err := r.store.QueryContext(ctx,
		`SELECT `+columns+` FROM history`+where+` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	entries := make([]domhistory.Entry, 0, limit)
	for rows.Next() {
		e, err := scan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan history: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate history: %w", err)
	}
	return entries, total, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (domhistory.Entry, error) {
	var (
		id, kind, subject, userID, results string
		count                              int
		key                                sql.NullString
		createdAt                          int64
	)
	if err := s.Scan(&id, &kind, &subject, &userID, &count, &results, &key, &createdAt); err != nil {
		return domhistory.Entry{}, err //nolint:wrapcheck // callers wrap with context
	}
	return domhistory.Reconstruct(
		id, domhistory.Kind(kind), subject, userID, count, []byte(results), key.String, createdAt,
	), nil
}
