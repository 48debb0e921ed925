package impl

import (
	"context"
	"fmt"

	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/usecase"

	"github.com/pkg/errors"
)

type locationService struct {
	locationRepo repository.LocationRepository
}

// NewLocationService creates a new location service instance
func NewLocationService(locationRepo repository.LocationRepository) usecase.LocationUsecase {
	return &locationService{locationRepo: locationRepo}
}

// ListProvinces returns every province ordered by name
func (s *locationService) ListProvinces(ctx context.Context) ([]*entity.Province, error) {
	provinces, err := s.locationRepo.ListProvinces(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list provinces: %w", err)
	}

	return provinces, nil
}

// ListDistricts returns the districts of a province ordered by name
func (s *locationService) ListDistricts(ctx context.Context, provinceID string) ([]*entity.District, error) {
	districts, err := s.locationRepo.ListDistricts(ctx, provinceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list districts: %w", err)
	}

	return districts, nil
}

// ListSectors returns the sectors of a district ordered by name
func (s *locationService) ListSectors(ctx context.Context, districtID string) ([]*entity.Sector, error) {
	sectors, err := s.locationRepo.ListSectors(ctx, districtID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sectors: %w", err)
	}

	return sectors, nil
}

// locationRefs are the optional location references carried by a farmer profile.
type locationRefs struct {
	provinceID *string
	districtID *string
	sectorID   *string
}

// validateLocationChain checks that every given id exists and that the given ids
// form one branch of the tree: the district lies in the province and the sector in the district.
func validateLocationChain(ctx context.Context, repo repository.LocationRepository, refs locationRefs) error {
	var district *entity.District
	var sector *entity.Sector

	if refs.provinceID != nil {
		if _, err := repo.FindProvince(ctx, *refs.provinceID); err != nil {
			return unknownLocation(err, "province", *refs.provinceID)
		}
	}
	if refs.districtID != nil {
		found, err := repo.FindDistrict(ctx, *refs.districtID)
		if err != nil {
			return unknownLocation(err, "district", *refs.districtID)
		}
		district = found
	}
	if refs.sectorID != nil {
		found, err := repo.FindSector(ctx, *refs.sectorID)
		if err != nil {
			return unknownLocation(err, "sector", *refs.sectorID)
		}
		sector = found
	}

	if district != nil && refs.provinceID != nil && district.ProvinceID != *refs.provinceID {
		return domainerrors.NewValidationError("district %q is not in province %q", district.ID, *refs.provinceID)
	}
	if sector != nil && refs.districtID != nil && sector.DistrictID != *refs.districtID {
		return domainerrors.NewValidationError("sector %q is not in district %q", sector.ID, *refs.districtID)
	}

	return nil
}

func unknownLocation(err error, kind, id string) error {
	if errors.Is(err, repository.ErrLocationNotFound) {
		return domainerrors.NewValidationError("unknown %s %q", kind, id)
	}

	return errors.Wrapf(err, "failed to find %s", kind)
}
