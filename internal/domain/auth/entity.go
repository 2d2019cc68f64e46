// internal/domain/auth/entity.go
package auth

import "time"

// User is an administrator allowed to edit the catalog.
type User struct {
	ID          int64     `json:"id" db:"id"`
	Username    string    `json:"username" db:"username"`
	Password    string    `json:"-" db:"password"`
	Email       *string   `json:"email" db:"email"`
	Role        string    `json:"role" db:"role"`
	DateCreated time.Time `json:"date_created" db:"date_created"`
	IsActive    bool      `json:"is_active" db:"is_active"`
}

// Identity is the authenticated principal attached to a request.
type Identity struct {
	UserID    int64  `json:"id"`
	Username  string `json:"username"`
	SessionID string `json:"-"`
}
