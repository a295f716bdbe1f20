package handlers

import (
	"net/http"

	"github.com/rs/zerolog/hlog"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Register creates a credential.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.credentials.Register(req.Username, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	hlog.FromRequest(r).Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	writeJSON(w, http.StatusOK, registerResponse{Success: true, Message: "User registered successfully"})
}

// Login verifies a credential and returns a session token.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.credentials.Verify(req.Username, req.Password)
	if err != nil {
		h.metrics.ObserveLogin(false)
		h.writeError(w, r, err)
		return
	}

	token, err := h.issuer.Issue(user)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.metrics.ObserveLogin(true)
	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}
