package models

import "time"

// Expense represents a single dated money transaction.
type Expense struct {
	ID          int64     `json:"id"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Date        string    `json:"date"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// User represents a stored credential.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Category is a distinct category name.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CategoryTotal aggregates the expenses of one category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}
