package xerrors

import (
	"errors"
	"fmt"
)

// Common reusable application errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized. please login")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrRateLimited        = errors.New("too many login attempts, please try again later")
	ErrSessionExpired     = errors.New("session expired or invalid")
	ErrFileTooLarge       = errors.New("file exceeds the upload size limit")
	ErrUnsupportedMedia   = errors.New("only image files are allowed")
)

// Wrap adds context to an error (similar to fmt.Errorf("%w")).
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Invalid returns an ErrInvalidInput carrying a client-facing message.
func Invalid(message string) error {
	return &validationError{message: message}
}

type validationError struct {
	message string
}

func (e *validationError) Error() string { return e.message }

func (e *validationError) Unwrap() error { return ErrInvalidInput }
