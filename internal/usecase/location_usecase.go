package usecase

import (
	"context"

	"agriconnect/internal/domain/entity"
)

// LocationUsecase serves the province, district and sector tree.
// Unknown parent ids yield empty lists.
type LocationUsecase interface {
	ListProvinces(ctx context.Context) ([]*entity.Province, error)
	ListDistricts(ctx context.Context, provinceID string) ([]*entity.District, error)
	ListSectors(ctx context.Context, districtID string) ([]*entity.Sector, error)
}
