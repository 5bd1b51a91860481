package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/resumatch/internal/db"
	domidem "github.com/kailas-cloud/resumatch/internal/domain/idempotency"
)

const keyPrefix = "idem:"

// store is the consumer interface for the idempotency cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	Del(ctx context.Context, key string) error
}

// Store keeps replayable responses in the key-value cache.
type Store struct {
	store store
	ttl   time.Duration
}

// New creates an idempotency store. Entries expire after ttl.
func New(s store, ttl time.Duration) *Store {
	return &Store{store: s, ttl: ttl}
}

// Lookup returns the stored response for scope, if any.
func (s *Store) Lookup(ctx context.Context, scope string) (domidem.Response, bool, error) {
	data, err := s.store.Get(ctx, keyPrefix+scope)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domidem.Response{}, false, nil
		}
		return domidem.Response{}, false, fmt.Errorf("idempotency GET: %w", err)
	}

	var resp domidem.Response
	if err := json.Unmarshal(data, &resp); err != nil {
		// Evict so the next request under this key runs and stores a fresh response.
		if delErr := s.store.Del(ctx, keyPrefix+scope); delErr != nil {
			return domidem.Response{}, false, fmt.Errorf("idempotency decode: %w (evict: %w)", err, delErr)
		}
		return domidem.Response{}, false, fmt.Errorf("idempotency decode: %w", err)
	}
	return resp, true, nil
}

// Save stores resp under scope unless a response is already there.
// It reports whether this call won the write.
func (s *Store) Save(ctx context.Context, scope string, resp domidem.Response) (bool, error) {
	data, err := json.Marshal(resp)
	if err != nil {
		return false, fmt.Errorf("idempotency encode: %w", err)
	}
	written, err := s.store.SetNX(ctx, keyPrefix+scope, data, s.ttl)
	if err != nil {
		return false, fmt.Errorf("idempotency SET NX: %w", err)
	}
	return written, nil
}
