package health

import "context"

// DBPinger checks relational store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CachePinger checks idempotency cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}
