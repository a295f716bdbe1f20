package storage

import (
	"expense-api/internal/models"
)

const expenseColumns = "id, category, amount, date, description, created_at, updated_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanExpense(s scanner) (*models.Expense, error) {
	var e models.Expense
	if err := s.Scan(&e.ID, &e.Category, &e.Amount, &e.Date, &e.Description, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, classify(err)
	}
	return &e, nil
}

// CreateExpense inserts a new expense and returns the stored row.
// ID is assigned by the database; the remaining fields are taken from e.
func (db *DB) CreateExpense(e *models.Expense) (*models.Expense, error) {
	result, err := db.conn.Exec(
		"INSERT INTO expenses (category, amount, date, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		e.Category, e.Amount, e.Date, e.Description, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return nil, classify(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}

	return db.GetExpense(id)
}

// GetExpense retrieves a single expense by ID.
func (db *DB) GetExpense(id int64) (*models.Expense, error) {
	row := db.conn.QueryRow("SELECT "+expenseColumns+" FROM expenses WHERE id = ?", id)
	return scanExpense(row)
}

// UpdateExpense replaces category, amount, date, description and updated_at
// of an existing expense. created_at is left untouched.
func (db *DB) UpdateExpense(e *models.Expense) (*models.Expense, error) {
	result, err := db.conn.Exec(
		"UPDATE expenses SET category = ?, amount = ?, date = ?, description = ?, updated_at = ? WHERE id = ?",
		e.Category, e.Amount, e.Date, e.Description, e.UpdatedAt, e.ID,
	)
	if err != nil {
		return nil, classify(err)
	}
	if err := requireAffected(result.RowsAffected()); err != nil {
		return nil, err
	}
	return db.GetExpense(e.ID)
}

// DeleteExpense removes an expense by ID.
func (db *DB) DeleteExpense(id int64) error {
	result, err := db.conn.Exec("DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return classify(err)
	}
	return requireAffected(result.RowsAffected())
}

// ListExpenses retrieves all expenses, latest date first. Expenses sharing a
// date keep their insertion order.
func (db *DB) ListExpenses() ([]models.Expense, error) {
	rows, err := db.conn.Query("SELECT " + expenseColumns + " FROM expenses ORDER BY date DESC, id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := make([]models.Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, *e)
	}

	return expenses, rows.Err()
}

// GetCategoryTotals sums expenses per category for dates in [from, to).
// Dates are compared as YYYY-MM-DD strings.
func (db *DB) GetCategoryTotals(from, to string) ([]models.CategoryTotal, error) {
	rows, err := db.conn.Query(`
		SELECT category, SUM(amount), COUNT(*)
		FROM expenses
		WHERE date >= ? AND date < ?
		GROUP BY category
		ORDER BY SUM(amount) DESC, category ASC
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make([]models.CategoryTotal, 0)
	for rows.Next() {
		var ct models.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total, &ct.Count); err != nil {
			return nil, err
		}
		totals = append(totals, ct)
	}

	return totals, rows.Err()
}

func requireAffected(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
