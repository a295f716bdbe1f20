package ledger

import (
	"errors"
	"fmt"
	"strings"

	"expense-api/internal/apperr"
	"expense-api/internal/models"
	"expense-api/internal/storage"
)

// CategoryStore is the persistence the registry needs.
type CategoryStore interface {
	CreateCategory(name string) (*models.Category, error)
	ListCategories() ([]models.Category, error)
}

// Registry keeps the set of distinct category names.
type Registry struct {
	store CategoryStore
}

// NewRegistry creates a Registry backed by store.
func NewRegistry(store CategoryStore) *Registry {
	return &Registry{store: store}
}

// List returns every category.
func (r *Registry) List() ([]models.Category, error) {
	categories, err := r.store.ListCategories()
	if err != nil {
		return nil, fmt.Errorf("%w: list categories: %v", apperr.ErrStorage, err)
	}
	return categories, nil
}

// Create adds a category. Two concurrent creates of the same name are settled
// by the unique index; the loser gets ErrDuplicateCategory.
func (r *Registry) Create(name string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Invalid("name is required")
	}

	category, err := r.store.CreateCategory(name)
	switch {
	case errors.Is(err, storage.ErrConflict):
		return nil, apperr.ErrDuplicateCategory
	case err != nil:
		return nil, fmt.Errorf("%w: create category: %v", apperr.ErrStorage, err)
	}
	return category, nil
}
