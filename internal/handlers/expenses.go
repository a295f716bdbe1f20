package handlers

import (
	"net/http"
	"strconv"

	"expense-api/internal/apperr"
	"expense-api/internal/ledger"

	"github.com/gorilla/mux"
)

type successResponse struct {
	Success bool `json:"success"`
}

// ListExpenses returns every expense, latest date first.
func (h *Handlers) ListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.ledger.List()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, expenses)
}

// CreateExpense stores a new expense and returns the full row.
func (h *Handlers) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var in ledger.ExpenseInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	expense, err := h.ledger.Create(in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

// UpdateExpense replaces the fields of an existing expense.
func (h *Handlers) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := expenseID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var in ledger.ExpenseInput
	if err := decodeJSON(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}

	expense, err := h.ledger.Update(id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, expense)
}

// DeleteExpense removes an expense.
func (h *Handlers) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := expenseID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.ledger.Delete(id); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}

// The route only matches digits, so a parse failure means the id overflows
// int64 and cannot name a stored row.
func expenseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, apperr.ErrNotFound
	}
	return id, nil
}
