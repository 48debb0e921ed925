package repository

import (
	"context"
	"errors"

	"agriconnect/internal/domain/entity"
)

var (
	// ErrLocationNotFound is returned when a province, district or sector does not exist.
	ErrLocationNotFound = errors.New("location not found")

	// ErrCategoryNotFound is returned when a product category does not exist.
	ErrCategoryNotFound = errors.New("category not found")
)

// LocationRepository serves the read-only province, district and sector tree. Lists are ordered by name.
// The Save methods exist for seeding and overwrite by id.
type LocationRepository interface {
	ListProvinces(ctx context.Context) ([]*entity.Province, error)
	ListDistricts(ctx context.Context, provinceID string) ([]*entity.District, error)
	ListSectors(ctx context.Context, districtID string) ([]*entity.Sector, error)

	FindProvince(ctx context.Context, id string) (*entity.Province, error)
	FindDistrict(ctx context.Context, id string) (*entity.District, error)
	FindSector(ctx context.Context, id string) (*entity.Sector, error)

	SaveProvince(ctx context.Context, province *entity.Province) error
	SaveDistrict(ctx context.Context, district *entity.District) error
	SaveSector(ctx context.Context, sector *entity.Sector) error
}

// CategoryRepository serves product categories ordered by name.
type CategoryRepository interface {
	List(ctx context.Context) ([]*entity.ProductCategory, error)
	FindByID(ctx context.Context, id string) (*entity.ProductCategory, error)

	// Save overwrites by id.
	Save(ctx context.Context, category *entity.ProductCategory) error
}
