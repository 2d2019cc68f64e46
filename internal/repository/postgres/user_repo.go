// internal/repository/postgres/user_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"showroom-service/internal/domain/auth"
	xerrors "showroom-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// FindActiveByUsername retrieves an active user by username
func (r *UserRepository) FindActiveByUsername(ctx context.Context, username string) (*auth.User, error) {
	query := `
		SELECT id, username, password, email, role, date_created, is_active
		FROM users
		WHERE username = $1 AND is_active = TRUE
	`

	var u auth.User
	err := r.db.QueryRow(ctx, query, username).Scan(
		&u.ID, &u.Username, &u.Password, &u.Email, &u.Role, &u.DateCreated, &u.IsActive,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &u, nil
}

// Create inserts a user whose password is already hashed.
func (r *UserRepository) Create(ctx context.Context, u *auth.User) (int64, error) {
	query := `
		INSERT INTO users (username, password, email, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query, u.Username, u.Password, u.Email, u.Role).Scan(&id)
	if isUniqueViolation(err) {
		return 0, fmt.Errorf("user %q already exists: %w", u.Username, xerrors.ErrDuplicateEntry)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	return id, nil
}

// ExistsByUsername reports whether any user, active or not, has the username.
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}

	return exists, nil
}
