package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter registers the public and the token-protected routes. Protected
// routes sit on a subrouter whose only middleware is AuthMiddleware, so no
// ledger or category handler runs for an unauthenticated request.
func NewRouter(h *Handlers) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/ping", h.Ping).Methods(http.MethodGet)
	r.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)

	protected := r.NewRoute().Subrouter()
	protected.Use(h.AuthMiddleware)

	protected.HandleFunc("/expenses", h.ListExpenses).Methods(http.MethodGet)
	protected.HandleFunc("/expenses", h.CreateExpense).Methods(http.MethodPost)
	protected.HandleFunc("/expenses/summary", h.Summary).Methods(http.MethodGet)
	protected.HandleFunc("/expenses/{id:[0-9]+}", h.UpdateExpense).Methods(http.MethodPut)
	protected.HandleFunc("/expenses/{id:[0-9]+}", h.DeleteExpense).Methods(http.MethodDelete)

	protected.HandleFunc("/categories", h.ListCategories).Methods(http.MethodGet)
	protected.HandleFunc("/categories", h.CreateCategory).Methods(http.MethodPost)

	return r
}
