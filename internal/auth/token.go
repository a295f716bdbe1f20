package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"expense-api/internal/apperr"
	"expense-api/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenLifetime is how long an issued token stays valid. Tokens cannot be
// revoked, so a leaked token is usable for this long.
const TokenLifetime = time.Hour

// Causes carried next to apperr.ErrInvalidToken by Validate.
var (
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
)

// Claims is the signed payload of a session token.
type Claims struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Issuer mints and validates HS256 session tokens with a single secret.
type Issuer struct {
	secret []byte
	now    func() time.Time
}

// NewIssuer creates an Issuer signing with secret.
func NewIssuer(secret []byte) (*Issuer, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret must not be empty")
	}
	return &Issuer{secret: secret, now: time.Now}, nil
}

// WithClock returns a copy of the issuer that reads the time from now.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	c := *i
	c.now = now
	return &c
}

// Issue returns a token for user expiring TokenLifetime from now.
func (i *Issuer) Issue(user *models.User) (string, error) {
	now := i.now()
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Validate checks the signature and expiry of tokenString and returns its
// claims. Every failure wraps apperr.ErrInvalidToken together with one of
// ErrTokenExpired, ErrTokenSignatureInvalid or ErrTokenMalformed.
func (i *Issuer) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperr.ErrInvalidToken, tokenFailure(err))
	}
	return claims, nil
}

func tokenFailure(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrTokenSignatureInvalid
	default:
		return ErrTokenMalformed
	}
}
