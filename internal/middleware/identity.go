// internal/middleware/identity.go
package middleware

import (
	"context"

	"showroom-service/internal/domain/auth"

	"github.com/gin-gonic/gin"
)

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying identity.
func WithIdentity(ctx context.Context, identity *auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFrom returns the identity attached to ctx, if any.
func IdentityFrom(ctx context.Context) (*auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*auth.Identity)
	return identity, ok && identity != nil
}

// GetIdentity reads the identity from the request context.
func GetIdentity(c *gin.Context) (*auth.Identity, bool) {
	return IdentityFrom(c.Request.Context())
}

// IsAuthenticated checks if request is authenticated
func IsAuthenticated(c *gin.Context) bool {
	_, ok := GetIdentity(c)
	return ok
}
