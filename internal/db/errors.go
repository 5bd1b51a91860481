package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrKeyNotFound      = errors.New("db: key not found")
	ErrUniqueViolation  = errors.New("db: unique constraint violated")
	ErrForeignViolation = errors.New("db: foreign key constraint violated")
)

// Op constants name the failing command or statement for error context.
const (
	OpPing    = "PING"
	OpGet     = "GET"
	OpSet     = "SET"
	OpDel     = "DEL"
	OpOpen    = "OPEN"
	OpMigrate = "MIGRATE"
	OpExec    = "EXEC"
	OpQuery   = "QUERY"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
