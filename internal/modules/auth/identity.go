package auth

import "context"

// Identity is the caller resolved from a bearer token. A nil *Identity
// means the request is anonymous.
type Identity struct {
	UserID int64
	OrgID  *int64
	Email  string
	Name   string
	Role   string
}

type identityContextKey struct{}

// WithIdentity stores the identity in ctx. A nil identity marks the
// request as anonymous.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext returns the identity attached by the resolver
// middleware, or nil for anonymous requests.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityContextKey{}).(*Identity)
	return id
}
