package impl

import (
	"context"
	"log/slog"
	"math"
	"strings"

	deliverycontext "agriconnect/internal/delivery/context"
	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/domain/scoring"
	"agriconnect/internal/domain/service"
	"agriconnect/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// farmerService implements the FarmerUsecase interface.
type farmerService struct {
	txManager    repository.TransactionManager
	farmerRepo   repository.FarmerRepository
	locationRepo repository.LocationRepository
	qrService    service.QRCodeService
	logger       *slog.Logger
}

// FarmerServiceParams holds dependencies for FarmerService, injected by Fx.
type FarmerServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	FarmerRepo   repository.FarmerRepository
	LocationRepo repository.LocationRepository
	QRService    service.QRCodeService
	Logger       *slog.Logger
}

// NewFarmerService creates a new farmer service instance
func NewFarmerService(params FarmerServiceParams) usecase.FarmerUsecase {
	return &farmerService{
		txManager:    params.TxManager,
		farmerRepo:   params.FarmerRepo,
		locationRepo: params.LocationRepo,
		qrService:    params.QRService,
		logger:       params.Logger,
	}
}

func (srv *farmerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateFarmer registers the caller's farmer profile and upgrades the account to the farmer role.
// Customers and farmer accounts without a profile may register; admins may not.
func (srv *farmerService) CreateFarmer(ctx context.Context, actor usecase.Actor, input usecase.CreateFarmerInput) (*entity.Farmer, error) {
	if actor.IsAdmin() {
		return nil, domainerrors.NewAuthorizationError("admin accounts cannot register a farmer profile")
	}

	farmName := strings.TrimSpace(input.FarmName)
	if farmName == "" {
		return nil, domainerrors.NewValidationError("farm name is required")
	}
	if err := validateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}

	farmer := &entity.Farmer{
		ID:          uuid.New(),
		UserID:      actor.UserID,
		FarmName:    farmName,
		Description: input.Description,
		ProvinceID:  nonEmpty(input.ProvinceID),
		DistrictID:  nonEmpty(input.DistrictID),
		SectorID:    nonEmpty(input.SectorID),
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		Phone:       input.Phone,
		Rating:      decimal.Zero,
		RatingSum:   decimal.Zero,
		IsActive:    true,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		owner, err := userRepo.FindByID(ctx, actor.UserID)
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to find user")
		}
		if owner.Role == entity.RoleAdmin {
			return domainerrors.NewAuthorizationError("admin accounts cannot register a farmer profile")
		}

		refs := locationRefs{provinceID: farmer.ProvinceID, districtID: farmer.DistrictID, sectorID: farmer.SectorID}
		if err := validateLocationChain(ctx, repoFactory.NewLocationRepository(), refs); err != nil {
			return err
		}

		if err := repoFactory.NewFarmerRepository().Create(ctx, farmer); err != nil {
			return err
		}

		if owner.Role != entity.RoleFarmer {
			role := entity.RoleFarmer
			owner, err = userRepo.Upsert(ctx, &entity.UserUpsert{ID: owner.ID, Role: &role})
			if err != nil {
				return errors.Wrap(err, "failed to upgrade user role")
			}
		}
		farmer.User = owner

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to create farmer profile", slog.Any("userID", actor.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create farmer profile")
	}

	srv.log(ctx).Info("Farmer profile created", slog.Any("farmerID", farmer.ID), slog.Any("userID", actor.UserID))

	return farmer, nil
}

func (srv *farmerService) GetFarmer(ctx context.Context, id uuid.UUID) (*entity.Farmer, error) {
	return findFarmer(ctx, srv.farmerRepo, id)
}

func (srv *farmerService) GetMyFarmer(ctx context.Context, userID uuid.UUID) (*entity.Farmer, error) {
	farmer, err := srv.farmerRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrFarmerNotFound) {
		return nil, domainerrors.ErrFarmerNotFound.WithDetails("no farmer profile for this account")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find farmer profile")
	}

	return farmer, nil
}

// UpdateMyFarmer edits the caller's profile. An empty location id clears that reference.
func (srv *farmerService) UpdateMyFarmer(ctx context.Context, userID uuid.UUID, input usecase.UpdateFarmerInput) (*entity.Farmer, error) {
	var updated *entity.Farmer
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		farmerRepo := repoFactory.NewFarmerRepository()

		farmer, err := farmerRepo.FindByUserID(ctx, userID)
		if errors.Is(err, repository.ErrFarmerNotFound) {
			return domainerrors.ErrFarmerNotFound.WithDetails("no farmer profile for this account")
		}
		if err != nil {
			return errors.Wrap(err, "failed to find farmer profile")
		}

		if err := applyFarmerUpdates(farmer, input); err != nil {
			return err
		}

		refs := locationRefs{provinceID: farmer.ProvinceID, districtID: farmer.DistrictID, sectorID: farmer.SectorID}
		if err := validateLocationChain(ctx, repoFactory.NewLocationRepository(), refs); err != nil {
			return err
		}

		if err := farmerRepo.Update(ctx, farmer); err != nil {
			return errors.Wrap(err, "failed to update farmer profile")
		}
		updated = farmer

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func applyFarmerUpdates(farmer *entity.Farmer, input usecase.UpdateFarmerInput) error {
	if input.FarmName != nil {
		name := strings.TrimSpace(*input.FarmName)
		if name == "" {
			return domainerrors.NewValidationError("farm name cannot be empty")
		}
		farmer.FarmName = name
	}
	if input.Description != nil {
		farmer.Description = *input.Description
	}
	if input.Phone != nil {
		farmer.Phone = *input.Phone
	}
	if input.ProvinceID != nil {
		farmer.ProvinceID = nonEmpty(input.ProvinceID)
	}
	if input.DistrictID != nil {
		farmer.DistrictID = nonEmpty(input.DistrictID)
	}
	if input.SectorID != nil {
		farmer.SectorID = nonEmpty(input.SectorID)
	}
	if input.Latitude != nil || input.Longitude != nil {
		if err := validateCoordinates(input.Latitude, input.Longitude); err != nil {
			return err
		}
		farmer.Latitude, farmer.Longitude = input.Latitude, input.Longitude
	}
	if input.IsActive != nil {
		farmer.IsActive = *input.IsActive
	}

	return nil
}

// SearchFarmers returns active farmers in creation order. With an origin every farmer that has
// coordinates gets a distance; with a maximum distance as well, farmers that are farther away
// or have no coordinates are dropped.
func (srv *farmerService) SearchFarmers(ctx context.Context, input usecase.SearchFarmersInput) ([]*entity.FarmerMatch, error) {
	if input.MaxDistanceKm != nil && *input.MaxDistanceKm < 0 {
		return nil, domainerrors.NewValidationError("maxDistance must not be negative")
	}

	farmers, err := srv.farmerRepo.Search(ctx, input.Filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search farmers")
	}

	matches := make([]*entity.FarmerMatch, 0, len(farmers))
	for _, farmer := range farmers {
		match := &entity.FarmerMatch{Farmer: farmer}
		if input.Origin != nil {
			if at, ok := farmer.Coordinates(); ok {
				d := math.Round(scoring.DistanceKm(*input.Origin, at)*10) / 10
				match.Distance = &d
			}
			if input.MaxDistanceKm != nil && (match.Distance == nil || *match.Distance > *input.MaxDistanceKm) {
				continue
			}
		}
		matches = append(matches, match)
	}

	return matches, nil
}

func (srv *farmerService) FarmerQRCode(ctx context.Context, id uuid.UUID) ([]byte, error) {
	farmer, err := findFarmer(ctx, srv.farmerRepo, id)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrService.GenerateFarmerQR(farmer.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate farmer QR code")
	}

	return png, nil
}

func findFarmer(ctx context.Context, repo repository.FarmerRepository, id uuid.UUID) (*entity.Farmer, error) {
	farmer, err := repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrFarmerNotFound) {
		return nil, domainerrors.ErrFarmerNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find farmer")
	}

	return farmer, nil
}

// validateCoordinates requires latitude and longitude together and within range.
func validateCoordinates(lat, lng *float64) error {
	if (lat == nil) != (lng == nil) {
		return domainerrors.NewValidationError("latitude and longitude must be provided together")
	}
	if lat == nil {
		return nil
	}
	if math.IsNaN(*lat) || *lat < -90 || *lat > 90 {
		return domainerrors.NewValidationError("latitude %v is out of range", *lat)
	}
	if math.IsNaN(*lng) || *lng < -180 || *lng > 180 {
		return domainerrors.NewValidationError("longitude %v is out of range", *lng)
	}

	return nil
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	trimmed := strings.TrimSpace(*s)

	return &trimmed
}
