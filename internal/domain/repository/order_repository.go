package repository

import (
	"context"
	"errors"

	"agriconnect/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines persistence operations for orders and their line items.
// Lists are returned most recent first.
type OrderRepository interface {
	// Create persists the order together with all of its items.
	Create(ctx context.Context, order *entity.Order) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindByCustomer returns a customer's orders with the farmer and its user joined.
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.Order, error)

	// FindByFarmer returns a farmer's orders with the customer joined.
	FindByFarmer(ctx context.Context, farmerID uuid.UUID) ([]*entity.Order, error)

	// FindAll returns every order with both counterparts joined.
	FindAll(ctx context.Context) ([]*entity.Order, error)

	// UpdateStatus moves the order from one status to another only if it is still in from.
	// Otherwise it returns ErrVersionConflict and leaves the order unchanged.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus) error
}
