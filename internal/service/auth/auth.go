// internal/service/auth/auth.go
package auth

import (
	"context"
	"errors"
	"sync"

	"showroom-service/internal/domain/auth"
	xerrors "showroom-service/internal/pkg/errors"
	"showroom-service/internal/pkg/session"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserRepository interface {
	FindActiveByUsername(ctx context.Context, username string) (*auth.User, error)
	Create(ctx context.Context, u *auth.User) (int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

type SessionStore interface {
	Create(ctx context.Context, userID int64, username, ip, userAgent string) (*session.Data, error)
	Get(ctx context.Context, id string) (*session.Data, error)
	Destroy(ctx context.Context, id string) error
}

type LoginLimiter interface {
	CheckLoginAttempt(ctx context.Context, ip, username string) (bool, int64, error)
	ResetLoginAttempts(ctx context.Context, ip, username string) error
}

type AuthService struct {
	users       UserRepository
	sessions    SessionStore
	rateLimiter LoginLimiter
	bcryptCost  int
	logger      *zap.Logger

	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthService wires the login flow. rateLimiter may be nil.
func NewAuthService(
	users UserRepository,
	sessions SessionStore,
	rateLimiter LoginLimiter,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:       users,
		sessions:    sessions,
		rateLimiter: rateLimiter,
		bcryptCost:  bcrypt.DefaultCost,
		logger:      logger,
	}
}

// ========== Login ==========

// Login checks the credentials and opens a session. Unknown users and wrong
// passwords fail with the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, xerrors.Invalid("Username and password are required")
	}

	if s.rateLimiter != nil {
		allowed, _, err := s.rateLimiter.CheckLoginAttempt(ctx, req.IPAddress, req.Username)
		if err != nil {
			return nil, xerrors.Wrap(err, "rate limiter error")
		}
		if !allowed {
			s.logger.Warn("login rate limited", zap.String("username", req.Username), zap.String("ip", req.IPAddress))
			return nil, xerrors.ErrRateLimited
		}
	}

	user, err := s.users.FindActiveByUsername(ctx, req.Username)
	if errors.Is(err, xerrors.ErrNotFound) {
		// Same bcrypt cost as a real check so timing does not reveal the username.
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(req.Password))
		s.logger.Info("login failed", zap.String("username", req.Username), zap.String("ip", req.IPAddress))
		return nil, xerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		s.logger.Info("login failed", zap.String("username", req.Username), zap.String("ip", req.IPAddress))
		return nil, xerrors.ErrInvalidCredentials
	}

	if s.rateLimiter != nil {
		if err := s.rateLimiter.ResetLoginAttempts(ctx, req.IPAddress, req.Username); err != nil {
			s.logger.Warn("failed to reset login attempts", zap.Error(err))
		}
	}

	sess, err := s.sessions.Create(ctx, user.ID, user.Username, req.IPAddress, req.UserAgent)
	if err != nil {
		s.logger.Error("failed to create session", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("user logged in", zap.Int64("user_id", user.ID), zap.String("username", user.Username))

	return &auth.LoginResponse{
		SessionID: sess.ID,
		User: auth.UserInfo{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	}, nil
}

// Logout destroys the session behind sessionID.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Destroy(ctx, sessionID); err != nil {
		s.logger.Error("failed to destroy session", zap.Error(err))
		return err
	}
	return nil
}

// Authenticate resolves a session id into the caller's identity.
func (s *AuthService) Authenticate(ctx context.Context, sessionID string) (*auth.Identity, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &auth.Identity{UserID: sess.UserID, Username: sess.Username, SessionID: sess.ID}, nil
}

func (s *AuthService) dummy() []byte {
	s.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("showroom-dummy-password"), s.bcryptCost)
		if err != nil {
			s.logger.Error("failed to prepare dummy hash", zap.Error(err))
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
