package auth

import (
	"errors"
	"fmt"
	"strings"

	"expense-api/internal/apperr"
	"expense-api/internal/models"
	"expense-api/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

// UserStore is the persistence the credential store needs.
type UserStore interface {
	CreateUser(username, passwordHash string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
}

// CredentialStore registers and verifies username/password pairs.
type CredentialStore struct {
	users UserStore
}

// NewCredentialStore creates a CredentialStore backed by users.
func NewCredentialStore(users UserStore) *CredentialStore {
	return &CredentialStore{users: users}
}

// Register stores a new credential. The password is only ever persisted as a
// bcrypt hash.
func (s *CredentialStore) Register(username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperr.Invalid("username and password are required")
	}

	hash, err := HashPassword(password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, apperr.Invalid("password must be at most 72 bytes")
	}
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %v", apperr.ErrStorage, err)
	}

	user, err := s.users.CreateUser(username, hash)
	switch {
	case errors.Is(err, storage.ErrConflict):
		return nil, apperr.ErrDuplicateUsername
	case err != nil:
		return nil, fmt.Errorf("%w: create user: %v", apperr.ErrStorage, err)
	}
	return user, nil
}

// Verify returns the credential for username if password matches it. An
// unknown username and a wrong password both yield ErrInvalidCredentials.
func (s *CredentialStore) Verify(username, password string) (*models.User, error) {
	user, err := s.users.GetUserByUsername(strings.TrimSpace(username))
	switch {
	case errors.Is(err, storage.ErrNotFound):
		CheckPassword(password, dummyHash())
		return nil, apperr.ErrInvalidCredentials
	case err != nil:
		return nil, fmt.Errorf("%w: get user: %v", apperr.ErrStorage, err)
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, apperr.ErrInvalidCredentials
	}
	return user, nil
}
