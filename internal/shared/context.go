package shared

import (
	"context"

	"github.com/google/uuid"
)

// Identity carries the authenticated user's claims through the request context.
type Identity struct {
	UserID   uuid.UUID
	Email    string
	Name     string
	CafeID   uuid.UUID
	CafeName string
}

type identityContextKey struct{}

// ContextWithIdentity stores the identity in context.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext extracts the identity from context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(Identity)
	return id, ok
}
