// Package apperr holds the error kinds every operation of the service is
// translated into before it reaches a caller.
package apperr

import "errors"

var (
	// ErrInvalidInput means the caller sent missing or malformed fields.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDuplicateUsername is returned when registering a taken username.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrDuplicateCategory is returned when creating a category name twice.
	ErrDuplicateCategory = errors.New("category already exists")
	// ErrInvalidCredentials covers both an unknown user and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNoToken means the request carried no bearer token.
	ErrNoToken = errors.New("no token provided")
	// ErrInvalidToken means the token was malformed, forged or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrNotFound means the addressed record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrStorage is an unexpected fault in the durable store.
	ErrStorage = errors.New("storage failure")
)

// Invalid returns an ErrInvalidInput carrying a message meant for the client.
func Invalid(msg string) error {
	return &inputError{msg: msg}
}

type inputError struct {
	msg string
}

func (e *inputError) Error() string { return e.msg }

func (e *inputError) Unwrap() error { return ErrInvalidInput }
