// internal/pkg/response/response.go
package response

import (
	"errors"
	"net/http"

	xerrors "showroom-service/internal/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Client-facing messages shared by handlers and middleware.
const (
	MsgInvalidCredentials = "Invalid username or password"
	MsgUnauthorized       = "Unauthorized. Please login."
)

// JSON writes payload as the response body without any envelope.
func JSON(c *gin.Context, status int, payload interface{}) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, payload)
}

// Success sends a successful response carrying a message plus optional fields.
func Success(c *gin.Context, status int, message string, fields gin.H) {
	if status == 0 {
		status = http.StatusOK
	}

	body := gin.H{"message": message}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(status, body)
}

// Error sends a standardized error response.
func Error(c *gin.Context, code int, message string) {
	// Abort before writing so later handlers in the chain never run.
	c.Abort()
	c.JSON(code, gin.H{"error": message})
}

// FromError maps an application error onto the HTTP error taxonomy.
// notFound is the message used for ErrNotFound.
func FromError(c *gin.Context, err error, notFound string) {
	switch {
	case errors.Is(err, xerrors.ErrInvalidCredentials):
		Error(c, http.StatusUnauthorized, MsgInvalidCredentials)
	case errors.Is(err, xerrors.ErrUnauthorized), errors.Is(err, xerrors.ErrSessionExpired):
		Error(c, http.StatusUnauthorized, MsgUnauthorized)
	case errors.Is(err, xerrors.ErrNotFound):
		Error(c, http.StatusNotFound, notFound)
	case errors.Is(err, xerrors.ErrRateLimited):
		Error(c, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, xerrors.ErrInvalidInput),
		errors.Is(err, xerrors.ErrFileTooLarge),
		errors.Is(err, xerrors.ErrUnsupportedMedia):
		Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, xerrors.ErrDuplicateEntry):
		Error(c, http.StatusConflict, err.Error())
	default:
		Error(c, http.StatusInternalServerError, err.Error())
	}
}

// ValidationError sends a 400 Bad Request response for invalid input.
func ValidationError(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}
