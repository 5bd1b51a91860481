package idempotency

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HeaderKey is the request header carrying the client key.
const HeaderKey = "Idempotency-Key"

// HeaderReplayed marks a response served from the cache.
const HeaderReplayed = "Idempotent-Replayed"

// Response is a stored HTTP response replayed verbatim on a repeated key.
type Response struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Scope derives the cache key for a client key. Keys are scoped by caller,
// method and path, so two callers (or two endpoints) never share a response.
func Scope(userID, method, path, key string) string {
	h := sha256.Sum256([]byte(strings.Join([]string{userID, method, path, key}, "\x00")))
	return hex.EncodeToString(h[:])
}

type ctxKey struct{}

// NewContext stores the client key of the current request.
func NewContext(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, ctxKey{}, key)
}

// KeyFromContext returns the client key of the current request, or "".
func KeyFromContext(ctx context.Context) string {
	k, _ := ctx.Value(ctxKey{}).(string)
	return k
}
