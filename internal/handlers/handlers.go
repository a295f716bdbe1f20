package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"expense-api/internal/apperr"
	"expense-api/internal/auth"
	"expense-api/internal/ledger"
	"expense-api/internal/metrics"
	"expense-api/internal/storage"

	"github.com/rs/zerolog/hlog"
)

// Context key type to avoid collisions.
type contextKey string

const (
	// ClaimsContextKey is the context key for the authenticated token claims.
	ClaimsContextKey contextKey = "claims"

	maxBodyBytes = 1 << 20
)

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	credentials *auth.CredentialStore
	issuer      *auth.Issuer
	guard       *auth.Guard
	ledger      *ledger.Ledger
	categories  *ledger.Registry
	metrics     *metrics.Metrics
}

// NewHandlers creates a new Handlers instance. m may be nil.
func NewHandlers(db *storage.DB, issuer *auth.Issuer, m *metrics.Metrics) *Handlers {
	return &Handlers{
		credentials: auth.NewCredentialStore(db),
		issuer:      issuer,
		guard:       auth.NewGuard(issuer),
		ledger:      ledger.NewLedger(db),
		categories:  ledger.NewRegistry(db),
		metrics:     m,
	}
}

// GetClaimsFromContext retrieves the authenticated token claims from the
// request context.
func GetClaimsFromContext(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(ClaimsContextKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}

// AuthMiddleware rejects requests without a valid bearer token before they
// reach the wrapped handler: 401 when no token is sent, 403 when it does
// not validate.
func (h *Handlers) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := h.guard.Authorize(r.Header.Get("Authorization"))
		if err != nil {
			reason := "invalid_token"
			if errors.Is(err, apperr.ErrNoToken) {
				reason = "no_token"
			}
			h.metrics.ObserveAuthRejection(reason)
			hlog.FromRequest(r).Debug().Str("reason", reason).Err(err).Msg("request rejected by access guard")
			h.writeError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Ping answers liveness probes.
func (h *Handlers) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Backend is live"})
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError translates err into a status code and a JSON error body. Storage
// faults are logged and reported without detail.
func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := http.StatusInternalServerError, "Internal server error"

	switch {
	case errors.Is(err, apperr.ErrInvalidInput):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperr.ErrDuplicateUsername):
		status, msg = http.StatusBadRequest, "User already exists"
	case errors.Is(err, apperr.ErrDuplicateCategory):
		status, msg = http.StatusBadRequest, "Category already exists"
	case errors.Is(err, apperr.ErrInvalidCredentials):
		status, msg = http.StatusBadRequest, "Invalid credentials"
	case errors.Is(err, apperr.ErrNoToken):
		status, msg = http.StatusUnauthorized, "Access denied. No token provided."
	case errors.Is(err, apperr.ErrInvalidToken):
		status, msg = http.StatusForbidden, "Invalid or expired token"
	case errors.Is(err, apperr.ErrNotFound):
		status, msg = http.StatusNotFound, "Expense not found"
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
	}

	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Invalid("malformed request body")
	}
	return nil
}
