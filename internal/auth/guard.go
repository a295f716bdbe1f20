package auth

import (
	"strings"

	"expense-api/internal/apperr"
)

// Guard admits a request when it carries a valid bearer token.
type Guard struct {
	issuer *Issuer
}

// NewGuard creates a Guard validating tokens with issuer.
func NewGuard(issuer *Issuer) *Guard {
	return &Guard{issuer: issuer}
}

// Authorize validates the value of an Authorization header. It returns
// apperr.ErrNoToken when no token is present and an error wrapping
// apperr.ErrInvalidToken when the token does not validate.
func (g *Guard) Authorize(header string) (*Claims, error) {
	scheme, token, _ := strings.Cut(strings.TrimSpace(header), " ")
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apperr.ErrNoToken
	}
	if !strings.EqualFold(scheme, "Bearer") {
		return nil, apperr.ErrInvalidToken
	}
	return g.issuer.Validate(token)
}
