// internal/service/auth/users.go
package auth

import (
	"context"
	"fmt"
	"strings"

	"showroom-service/internal/domain/auth"
	xerrors "showroom-service/internal/pkg/errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const defaultRole = "admin"

// CreateUser hashes the password and stores a new active user.
func (s *AuthService) CreateUser(ctx context.Context, req *auth.CreateUserRequest) (*auth.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, xerrors.Invalid("Username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = defaultRole
	}

	u := &auth.User{
		Username: username,
		Password: string(hash),
		Role:     role,
		IsActive: true,
	}
	if email := strings.TrimSpace(req.Email); email != "" {
		u.Email = &email
	}

	id, err := s.users.Create(ctx, u)
	if err != nil {
		return nil, err
	}
	u.ID = id

	s.logger.Info("user created", zap.Int64("user_id", id), zap.String("username", username), zap.String("role", role))
	return u, nil
}

// EnsureAdminExists creates the bootstrap administrator on startup when
// credentials are configured and the username is not taken yet.
func (s *AuthService) EnsureAdminExists(ctx context.Context, username, password, email string) error {
	if username == "" || password == "" {
		s.logger.Info("admin bootstrap credentials not set, skipping")
		return nil
	}

	exists, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to check admin existence: %w", err)
	}
	if exists {
		s.logger.Info("admin user already exists, skipping creation", zap.String("username", username))
		return nil
	}

	s.logger.Info("creating admin account", zap.String("username", username))

	_, err = s.CreateUser(ctx, &auth.CreateUserRequest{
		Username: username,
		Password: password,
		Email:    email,
		Role:     defaultRole,
	})
	return err
}
