package sqldb

import (
	"context"
	"testing"
)

// OpenTest opens a migrated in-memory SQLite database closed at test cleanup.
func OpenTest(tb testing.TB) *DB {
	tb.Helper()

	ctx := context.Background()
	d, err := Open(ctx, Config{Dialect: SQLite, DSN: ":memory:"})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	tb.Cleanup(func() { _ = d.Close() })

	if err := d.Migrate(ctx); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return d
}
