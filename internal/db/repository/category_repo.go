package repository

import (
	"context"

	"github.com/gokatarajesh/trivia-api/internal/db/queries"
)

type categoryStore interface {
	ListCategories(ctx context.Context) ([]queries.Category, error)
	GetCategory(ctx context.Context, id int) (queries.Category, error)
}

// CategoryRepository exposes read-only category lookups.
type CategoryRepository struct {
	store categoryStore
}

func NewCategoryRepository(store categoryStore) *CategoryRepository {
	return &CategoryRepository{store: store}
}

// List returns all categories ordered by id.
func (r *CategoryRepository) List(ctx context.Context) ([]queries.Category, error) {
	return r.store.ListCategories(ctx)
}

// Get fetches a category by id, returning ErrNotFound when absent.
func (r *CategoryRepository) Get(ctx context.Context, id int) (queries.Category, error) {
	c, err := r.store.GetCategory(ctx, id)
	return c, translate(err)
}
