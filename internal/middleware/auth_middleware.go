// internal/middleware/auth_middleware.go
package middleware

import (
	"context"
	"errors"
	"net/http"

	"showroom-service/internal/domain/auth"
	xerrors "showroom-service/internal/pkg/errors"
	"showroom-service/internal/pkg/response"
	"showroom-service/internal/pkg/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Authenticator resolves a session id into an identity.
type Authenticator interface {
	Authenticate(ctx context.Context, sessionID string) (*auth.Identity, error)
}

type AuthMiddleware struct {
	auth   Authenticator
	cookie session.Cookie
	logger *zap.Logger
}

func NewAuthMiddleware(authenticator Authenticator, cookie session.Cookie, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		auth:   authenticator,
		cookie: cookie,
		logger: logger,
	}
}

// Optional attaches the caller's identity to the request when the session
// cookie is valid and lets every request through.
func (m *AuthMiddleware) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		m.resolve(c)
		c.Next()
	}
}

// Require rejects requests without a valid session with 401.
func (m *AuthMiddleware) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.resolve(c) {
			response.FromError(c, xerrors.ErrUnauthorized, "")
			return
		}
		c.Next()
	}
}

// RedirectAnonymous sends browsers without a session to target.
func (m *AuthMiddleware) RedirectAnonymous(target string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.resolve(c) {
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) resolve(c *gin.Context) bool {
	if _, ok := IdentityFrom(c.Request.Context()); ok {
		return true
	}

	sessionID := m.cookie.Read(c)
	if sessionID == "" {
		return false
	}

	identity, err := m.auth.Authenticate(c.Request.Context(), sessionID)
	if err != nil {
		if !errors.Is(err, xerrors.ErrSessionExpired) {
			m.logger.Warn("session lookup failed", zap.Error(err))
		}
		return false
	}

	c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), identity))
	return true
}
