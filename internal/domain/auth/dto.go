// internal/domain/auth/dto.go
package auth

// LoginRequest for user login
type LoginRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

// LoginResponse is returned after a successful login. SessionID is carried
// to the client only as a cookie.
type LoginResponse struct {
	SessionID string   `json:"-"`
	User      UserInfo `json:"user"`
}

// UserInfo minimal user information
type UserInfo struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Email    *string `json:"email"`
}

// StatusResponse describes the caller's session.
type StatusResponse struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
}

// CreateUserRequest is used by the CLI and startup bootstrap.
type CreateUserRequest struct {
	Username string
	Password string
	Email    string
	Role     string
}
