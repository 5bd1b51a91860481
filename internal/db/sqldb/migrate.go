package sqldb

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/kailas-cloud/resumatch/internal/db"
)

//go:embed schema.sql
var schema string

// statements splits the embedded schema into individual statements.
func statements() []string {
	parts := strings.Split(schema, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Migrate applies the schema inside one transaction. It is idempotent.
func (d *DB) Migrate(ctx context.Context) error {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return &db.Error{Op: db.OpMigrate, Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements() {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return &db.Error{Op: db.OpMigrate, Err: fmt.Errorf("statement %d: %w", i+1, err)}
		}
	}
	if err := tx.Commit(); err != nil {
		return &db.Error{Op: db.OpMigrate, Err: err}
	}
	return nil
}
