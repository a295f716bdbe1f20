package storage

import (
	"expense-api/internal/models"
)

// CreateCategory inserts a category. A name that already exists yields
// ErrConflict.
func (db *DB) CreateCategory(name string) (*models.Category, error) {
	result, err := db.conn.Exec("INSERT INTO categories (name) VALUES (?)", name)
	if err != nil {
		return nil, classify(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &models.Category{ID: id, Name: name}, nil
}

// ListCategories returns every category.
func (db *DB) ListCategories() ([]models.Category, error) {
	rows, err := db.conn.Query("SELECT id, name FROM categories ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]models.Category, 0)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
