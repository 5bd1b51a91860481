// Package identity carries the authenticated caller through a request.
package identity

import (
	"context"

	"github.com/kailas-cloud/resumatch/internal/domain/role"
)

// Identity is the resolved caller: who they are and what they may see.
type Identity struct {
	UserID string
	Role   role.Role
}

// IsAdmin reports whether the caller has the admin role.
func (i Identity) IsAdmin() bool { return i.Role == role.Admin }

// Owns reports whether the caller is the given owner.
func (i Identity) Owns(ownerID string) bool { return ownerID != "" && i.UserID == ownerID }

type ctxKey struct{}

// NewContext stores the caller identity in ctx.
func NewContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the caller identity stored in ctx.
// ok is false when the request was not authenticated.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
