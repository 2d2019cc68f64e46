package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"showroom-service/internal/domain/auth"
	xerrors "showroom-service/internal/pkg/errors"
	"showroom-service/internal/pkg/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type stubAuthenticator map[string]*auth.Identity

func (s stubAuthenticator) Authenticate(_ context.Context, sessionID string) (*auth.Identity, error) {
	if sessionID == "broken" {
		return nil, errors.New("redis down")
	}
	identity, ok := s[sessionID]
	if !ok {
		return nil, xerrors.ErrSessionExpired
	}
	return identity, nil
}

var testCookie = session.Cookie{Name: "showroom.sid"}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(stubAuthenticator{"good": {UserID: 1, Username: "admin"}}, testCookie, zap.NewNop())

	r := gin.New()
	r.Use(RecoveryMiddleware(zap.NewNop()), m.Optional())
	r.GET("/whoami", func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, identity.Username)
	})
	r.POST("/edit", m.Require(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/admin.html", m.RedirectAnonymous("/login.html"), func(c *gin.Context) { c.String(http.StatusOK, "admin") })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r
}

func serve(r http.Handler, method, path, sessionID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: testCookie.Name, Value: sessionID})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestOptional(t *testing.T) {
	r := newTestRouter()

	assert.Equal(t, "admin", serve(r, http.MethodGet, "/whoami", "good").Body.String())
	assert.Equal(t, "anonymous", serve(r, http.MethodGet, "/whoami", "").Body.String())
	assert.Equal(t, "anonymous", serve(r, http.MethodGet, "/whoami", "stale").Body.String())
	assert.Equal(t, "anonymous", serve(r, http.MethodGet, "/whoami", "broken").Body.String())
}

func TestRequire(t *testing.T) {
	r := newTestRouter()

	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodPost, "/edit", "good").Code)

	w := serve(r, http.MethodPost, "/edit", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized. Please login."}`, w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodPost, "/edit", "stale").Code)
}

func TestRedirectAnonymous(t *testing.T) {
	r := newTestRouter()

	w := serve(r, http.MethodGet, "/admin.html", "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login.html", w.Header().Get("Location"))

	w = serve(r, http.MethodGet, "/admin.html", "good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", w.Body.String())
}

func TestRecovery(t *testing.T) {
	w := serve(newTestRouter(), http.MethodGet, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
}

func newRecoveryRouter(logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(stubAuthenticator{"good": {UserID: 1, Username: "admin"}}, testCookie, zap.NewNop())

	r := gin.New()
	r.Use(RecoveryMiddleware(logger), m.Optional())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	r.GET("/late", func(c *gin.Context) {
		c.String(http.StatusOK, "partial")
		panic("after write")
	})
	r.GET("/abort", func(c *gin.Context) { panic(http.ErrAbortHandler) })
	return r
}

func TestRecovery_LogsCaller(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	r := newRecoveryRouter(zap.New(core))

	w := serve(r, http.MethodGet, "/panic", "good")
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	entries := logs.FilterMessage("panic recovered").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "boom", fields["panic"])
	assert.Equal(t, "/panic", fields["path"])
	assert.Equal(t, "admin", fields["username"])
	assert.Equal(t, false, fields["response_started"])
}

func TestRecovery_ResponseAlreadyStarted(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	r := newRecoveryRouter(zap.New(core))

	w := serve(r, http.MethodGet, "/late", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "partial", w.Body.String())

	entries := logs.FilterMessage("panic recovered").All()
	require.Len(t, entries, 1)
	assert.Equal(t, true, entries[0].ContextMap()["response_started"])
	assert.NotContains(t, entries[0].ContextMap(), "username")
}

func TestRecovery_RepanicsAbortHandler(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	r := newRecoveryRouter(zap.New(core))

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		serve(r, http.MethodGet, "/abort", "")
	})
	assert.Zero(t, logs.Len())
}

func corsRequest(r http.Handler, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/products", nil)
	req.Header.Set("Origin", origin)
	if method == http.MethodOptions {
		req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORS_AllowList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://display.local"}))
	r.GET("/api/products", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := corsRequest(r, http.MethodGet, "http://display.local")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://display.local", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = corsRequest(r, http.MethodGet, "http://evil.example")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = corsRequest(r, http.MethodOptions, "http://display.local")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPut)
}

func TestCORS_ReflectsAnyOriginWhenUnset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORSMiddleware(nil))
	r.GET("/api/products", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := corsRequest(r, http.MethodGet, "http://kiosk-7.showroom.local")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://kiosk-7.showroom.local", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	// requests without an Origin header are not CORS requests
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
