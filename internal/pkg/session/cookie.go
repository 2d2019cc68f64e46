// internal/pkg/session/cookie.go
package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Cookie carries the session id to the browser.
type Cookie struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// Set writes the session cookie. It is HttpOnly and SameSite=Lax.
func (ck Cookie) Set(c *gin.Context, sessionID string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ck.Name, sessionID, int(ck.MaxAge.Seconds()), "/", "", ck.Secure, true)
}

// Clear expires the session cookie in the browser.
func (ck Cookie) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ck.Name, "", -1, "/", "", ck.Secure, true)
}

// Read returns the session id sent by the browser, or "".
func (ck Cookie) Read(c *gin.Context) string {
	v, err := c.Cookie(ck.Name)
	if err != nil {
		return ""
	}
	return v
}
