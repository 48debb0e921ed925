package repository

import (
	"context"
	"errors"

	"agriconnect/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrFarmerNotFound is returned when a farmer profile does not exist.
var ErrFarmerNotFound = errors.New("farmer not found")

// FarmerRepository defines persistence operations for farmer profiles.
// Read paths populate Farmer.User.
type FarmerRepository interface {
	// Create persists a new profile. A second profile for the same user yields domainerrors.ErrFarmerAlreadyExists.
	Create(ctx context.Context, farmer *entity.Farmer) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Farmer, error)

	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Farmer, error)

	// Search returns active farmers matching the filter in creation order.
	Search(ctx context.Context, filter entity.FarmerFilter) ([]*entity.Farmer, error)

	// FindAll returns every profile, active or not, in creation order.
	FindAll(ctx context.Context) ([]*entity.Farmer, error)

	// Update stores profile edits. Rating fields are left untouched.
	Update(ctx context.Context, farmer *entity.Farmer) error

	// ApplyRating folds a review rating into the farmer's running mean.
	// Concurrent calls for the same farmer are serialized.
	ApplyRating(ctx context.Context, id uuid.UUID, rating int) (*entity.Farmer, error)
}
