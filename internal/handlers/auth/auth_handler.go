// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"

	"showroom-service/internal/domain/auth"
	"showroom-service/internal/middleware"
	"showroom-service/internal/pkg/response"
	"showroom-service/internal/pkg/session"
	authUsecase "showroom-service/internal/service/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *authUsecase.AuthService
	cookie      session.Cookie
	logger      *zap.Logger
}

func NewAuthHandler(authService *authUsecase.AuthService, cookie session.Cookie, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
		logger:      logger,
	}
}

// ========== Session ==========

// Login checks credentials and sets the session cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Username and password are required")
		return
	}

	req.IPAddress = c.ClientIP()
	req.UserAgent = c.Request.UserAgent()

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err, response.MsgInvalidCredentials)
		return
	}

	h.cookie.Set(c, result.SessionID)
	response.Success(c, http.StatusOK, "Login successful", gin.H{"user": result.User})
}

// Logout destroys the session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if sessionID := h.cookie.Read(c); sessionID != "" {
		if err := h.authService.Logout(c.Request.Context(), sessionID); err != nil {
			response.Error(c, http.StatusInternalServerError, "Logout failed")
			return
		}
	}

	h.cookie.Clear(c)
	response.Success(c, http.StatusOK, "Logout successful", nil)
}

// Status reports whether the caller has a live session.
func (h *AuthHandler) Status(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		response.JSON(c, http.StatusOK, auth.StatusResponse{Authenticated: false})
		return
	}

	response.JSON(c, http.StatusOK, auth.StatusResponse{
		Authenticated: true,
		Username:      identity.Username,
	})
}
