// Package ledger owns expense records and the category list, and enforces the
// shape every stored record must have.
package ledger

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"expense-api/internal/apperr"
	"expense-api/internal/models"
	"expense-api/internal/storage"
)

// DateLayout is the calendar date format of Expense.Date.
const DateLayout = "2006-01-02"

// ExpenseStore is the persistence the ledger needs.
type ExpenseStore interface {
	CreateExpense(e *models.Expense) (*models.Expense, error)
	UpdateExpense(e *models.Expense) (*models.Expense, error)
	DeleteExpense(id int64) error
	ListExpenses() ([]models.Expense, error)
	GetCategoryTotals(from, to string) ([]models.CategoryTotal, error)
}

// ExpenseInput carries the client-supplied fields of an expense.
type ExpenseInput struct {
	Category    string   `json:"category"`
	Amount      *Amount  `json:"amount"`
	Date        string   `json:"date"`
	Description *string  `json:"description"`
}

// Ledger creates, lists, updates and deletes expense records.
type Ledger struct {
	store ExpenseStore
	now   func() time.Time
}

// NewLedger creates a Ledger backed by store.
func NewLedger(store ExpenseStore) *Ledger {
	return &Ledger{store: store, now: time.Now}
}

// Create validates in, stamps created_at and updated_at with the same instant
// and returns the stored row.
func (l *Ledger) Create(in ExpenseInput) (*models.Expense, error) {
	e, err := in.expense()
	if err != nil {
		return nil, err
	}

	now := l.now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	stored, err := l.store.CreateExpense(e)
	if err != nil {
		return nil, fmt.Errorf("%w: create expense: %v", apperr.ErrStorage, err)
	}
	return stored, nil
}

// List returns every expense, latest date first.
func (l *Ledger) List() ([]models.Expense, error) {
	expenses, err := l.store.ListExpenses()
	if err != nil {
		return nil, fmt.Errorf("%w: list expenses: %v", apperr.ErrStorage, err)
	}
	return expenses, nil
}

// Update replaces the client-supplied fields of expense id and bumps its
// updated_at.
func (l *Ledger) Update(id int64, in ExpenseInput) (*models.Expense, error) {
	e, err := in.expense()
	if err != nil {
		return nil, err
	}
	e.ID = id
	e.UpdatedAt = l.now().UTC()

	stored, err := l.store.UpdateExpense(e)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil, apperr.ErrNotFound
	case err != nil:
		return nil, fmt.Errorf("%w: update expense %d: %v", apperr.ErrStorage, id, err)
	}
	return stored, nil
}

// Delete removes expense id.
func (l *Ledger) Delete(id int64) error {
	err := l.store.DeleteExpense(id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return apperr.ErrNotFound
	case err != nil:
		return fmt.Errorf("%w: delete expense %d: %v", apperr.ErrStorage, id, err)
	}
	return nil
}

func (in ExpenseInput) expense() (*models.Expense, error) {
	category := strings.TrimSpace(in.Category)
	date := strings.TrimSpace(in.Date)
	if category == "" || in.Amount == nil || date == "" {
		return nil, apperr.Invalid("category, amount and date are required")
	}

	amount := float64(*in.Amount)
	if amount <= 0 || math.IsInf(amount, 0) || math.IsNaN(amount) {
		return nil, apperr.Invalid("amount must be a positive number")
	}

	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, apperr.Invalid("date must be formatted as YYYY-MM-DD")
	}

	var description *string
	if in.Description != nil && *in.Description != "" {
		d := *in.Description
		description = &d
	}

	return &models.Expense{
		Category:    category,
		Amount:      amount,
		Date:        date,
		Description: description,
	}, nil
}
