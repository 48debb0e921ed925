package repository

import (
	"context"
	"errors"

	"agriconnect/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	// ErrProductNotFound is returned when a product does not exist.
	ErrProductNotFound = errors.New("product not found")

	// ErrVersionConflict is returned when an optimistic update lost a race with another writer.
	ErrVersionConflict = errors.New("entity was modified concurrently")
)

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error

	// FindByID returns the product with its farmer joined.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindByFarmer returns every product of a farmer in creation order.
	FindByFarmer(ctx context.Context, farmerID uuid.UUID) ([]*entity.Product, error)

	// Search returns products flagged available whose active farmer and own fields match the filter,
	// with the farmer and its user joined, in creation order.
	Search(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error)

	// FindAll returns every product with its farmer joined.
	FindAll(ctx context.Context) ([]*entity.Product, error)

	// Update stores the product if its Version still matches the stored one and bumps Version.
	// A mismatch yields ErrVersionConflict and leaves the stored product unchanged.
	Update(ctx context.Context, product *entity.Product) error
}
