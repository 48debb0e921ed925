package repository

import (
	"context"

	"agriconnect/internal/domain/entity"

	"github.com/google/uuid"
)

// ReviewRepository defines persistence operations for reviews. Reviews are immutable.
type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error

	// FindByFarmer returns a farmer's reviews in creation order with the customer joined.
	FindByFarmer(ctx context.Context, farmerID uuid.UUID) ([]*entity.Review, error)
}
