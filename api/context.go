package api

import (
	"context"

	"github.com/sanketkurve/portfolio-backend/auth"
)

type keyType string

const identityKey keyType = "identity"

// ctxWithIdentity attaches the authenticated admin to the context
func ctxWithIdentity(ctx context.Context, identity *auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// ctxGetIdentity returns the admin set by the auth middleware, if any.
func ctxGetIdentity(ctx context.Context) (*auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(*auth.Identity)
	return identity, ok && identity != nil
}

// actor names the admin for audit logs.
func actor(ctx context.Context) string {
	if identity, ok := ctxGetIdentity(ctx); ok {
		return identity.Username
	}
	return "unknown"
}
