// Package sqldb is the relational store shared by the resume, job,
// application and history repositories. It runs on embedded SQLite
// (modernc.org/sqlite) or PostgreSQL (pgx stdlib driver).
package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/kailas-cloud/resumatch/internal/db"
)

// Dialect selects placeholder style and driver.
type Dialect string

// Supported dialects.
const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// driverName maps a dialect to its registered database/sql driver.
func (d Dialect) driverName() (string, error) {
	switch d {
	case SQLite:
		return "sqlite", nil
	case Postgres:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported dialect %q", d)
	}
}

// Config holds connection parameters.
type Config struct {
	Dialect      Dialect
	DSN          string
	MaxOpenConns int
}

// DB wraps *sql.DB and rewrites '?' placeholders for the active dialect.
type DB struct {
	sql     *sql.DB
	dialect Dialect
}

// Open connects to the database. SQLite gets a single connection (single
// writer) with foreign keys enabled.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	driver, err := cfg.Dialect.driverName()
	if err != nil {
		return nil, &db.Error{Op: db.OpOpen, Err: err}
	}
	if cfg.DSN == "" {
		return nil, &db.Error{Op: db.OpOpen, Err: errors.New("dsn is required")}
	}

	dsn := cfg.DSN
	if cfg.Dialect == SQLite {
		dsn = withSQLitePragmas(dsn)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, &db.Error{Op: db.OpOpen, Err: err}
	}

	if cfg.Dialect == SQLite {
		conn.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(cfg.MaxOpenConns)
		conn.SetMaxIdleConns(cfg.MaxOpenConns)
		conn.SetConnMaxIdleTime(5 * time.Minute)
	}

	d := &DB{sql: conn, dialect: cfg.Dialect}
	if err := d.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return d, nil
}

func withSQLitePragmas(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Dialect returns the active dialect.
func (d *DB) Dialect() Dialect { return d.dialect }

// Ping checks connectivity.
func (d *DB) Ping(ctx context.Context) error {
	if err := d.sql.PingContext(ctx); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close releases the connection pool.
func (d *DB) Close() error {
	if err := d.sql.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

// ExecContext runs a statement written with '?' placeholders.
func (d *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := d.sql.ExecContext(ctx, d.Rebind(query), args...)
	if err != nil {
		return nil, &db.Error{Op: db.OpExec, Err: classify(err)}
	}
	return res, nil
}

// QueryContext runs a query written with '?' placeholders.
func (d *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	rows, err := d.sql.QueryContext(ctx, d.Rebind(query), args...)
	if err != nil {
		return nil, &db.Error{Op: db.OpQuery, Err: err}
	}
	return rows, nil
}

// QueryRowContext runs a single-row query written with '?' placeholders.
// Errors surface from Scan; sql.ErrNoRows is left for the caller to map.
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return d.sql.QueryRowContext(ctx, d.Rebind(query), args...)
}

// Rebind rewrites '?' placeholders to '$n' for PostgreSQL.
func (d *DB) Rebind(query string) string {
	if d.dialect != Postgres {
		return query
	}
	return rebindDollar(query)
}

func rebindDollar(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

// classify maps driver constraint errors onto db sentinels, keeping the
// driver error in the chain.
func classify(err error) error {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %w", db.ErrUniqueViolation, err)
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return fmt.Errorf("%w: %w", db.ErrForeignViolation, err)
		}
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%w: %w", db.ErrUniqueViolation, err)
		case "23503":
			return fmt.Errorf("%w: %w", db.ErrForeignViolation, err)
		}
	}
	return err
}
