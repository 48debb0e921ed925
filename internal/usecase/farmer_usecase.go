package usecase

import (
	"context"

	"agriconnect/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// CreateFarmerInput represents the input for registering a farmer profile
type CreateFarmerInput struct {
	FarmName    string
	Description string
	Phone       string
	ProvinceID  *string
	DistrictID  *string
	SectorID    *string
	Latitude    *float64
	Longitude   *float64
}

// UpdateFarmerInput represents the input for editing a farmer profile. Nil fields are kept.
type UpdateFarmerInput struct {
	FarmName    *string
	Description *string
	Phone       *string
	ProvinceID  *string
	DistrictID  *string
	SectorID    *string
	Latitude    *float64
	Longitude   *float64
	IsActive    *bool
}

// SearchFarmersInput narrows a farmer search.
// Origin enables distances; MaxDistanceKm only applies together with Origin.
type SearchFarmersInput struct {
	Filter        entity.FarmerFilter
	Origin        *orb.Point
	MaxDistanceKm *float64
}

// FarmerUsecase defines the interface for farmer profile use cases
type FarmerUsecase interface {
	CreateFarmer(ctx context.Context, actor Actor, input CreateFarmerInput) (*entity.Farmer, error)
	GetFarmer(ctx context.Context, id uuid.UUID) (*entity.Farmer, error)
	GetMyFarmer(ctx context.Context, userID uuid.UUID) (*entity.Farmer, error)
	UpdateMyFarmer(ctx context.Context, userID uuid.UUID, input UpdateFarmerInput) (*entity.Farmer, error)
	SearchFarmers(ctx context.Context, input SearchFarmersInput) ([]*entity.FarmerMatch, error)
	// FarmerQRCode renders a PNG linking to the farmer's public profile.
	FarmerQRCode(ctx context.Context, id uuid.UUID) ([]byte, error)
}
