package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "agriconnect/internal/delivery/context"
	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/domain/scoring"
	"agriconnect/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// productService implements the ProductUsecase interface.
type productService struct {
	txManager    repository.TransactionManager
	productRepo  repository.ProductRepository
	farmerRepo   repository.FarmerRepository
	categoryRepo repository.CategoryRepository
	locationRepo repository.LocationRepository
	logger       *slog.Logger
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	ProductRepo  repository.ProductRepository
	FarmerRepo   repository.FarmerRepository
	CategoryRepo repository.CategoryRepository
	LocationRepo repository.LocationRepository
	Logger       *slog.Logger
}

// NewProductService creates a new product service instance
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		txManager:    params.TxManager,
		productRepo:  params.ProductRepo,
		farmerRepo:   params.FarmerRepo,
		categoryRepo: params.CategoryRepo,
		locationRepo: params.LocationRepo,
		logger:       params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateProduct lists a product under the caller's farmer profile.
func (srv *productService) CreateProduct(ctx context.Context, actor usecase.Actor, input usecase.CreateProductInput) (*entity.Product, error) {
	farmer, err := srv.callerFarmer(ctx, srv.farmerRepo, actor, "only farmers can create products")
	if err != nil {
		return nil, err
	}

	product := &entity.Product{
		ID:                uuid.New(),
		FarmerID:          farmer.ID,
		CategoryID:        nonEmpty(input.CategoryID),
		Name:              strings.TrimSpace(input.Name),
		NameKinyarwanda:   input.NameKinyarwanda,
		Description:       input.Description,
		Unit:              strings.TrimSpace(input.Unit),
		AvailableQuantity: 0,
		MinOrderQuantity:  1,
		IsAvailable:       true,
		ImageURL:          input.ImageURL,
	}
	if input.PricePerUnit != nil {
		product.PricePerUnit = *input.PricePerUnit
	}
	if input.AvailableQuantity != nil {
		product.AvailableQuantity = *input.AvailableQuantity
	}
	if input.MinOrderQuantity != nil {
		product.MinOrderQuantity = *input.MinOrderQuantity
	}
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}

	switch {
	case product.Name == "":
		return nil, domainerrors.NewValidationError("product name is required")
	case product.Unit == "":
		return nil, domainerrors.NewValidationError("unit is required")
	case input.PricePerUnit == nil:
		return nil, domainerrors.NewValidationError("price per unit is required")
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if product.CategoryID != nil {
		if err := srv.requireCategory(ctx, *product.CategoryID); err != nil {
			return nil, err
		}
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		srv.log(ctx).Error("Failed to create product", slog.Any("farmerID", farmer.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create product")
	}
	product.Farmer = farmer

	return product, nil
}

// UpdateProduct applies a partial edit by the owning farmer.
func (srv *productService) UpdateProduct(ctx context.Context, actor usecase.Actor, id uuid.UUID, input usecase.UpdateProductInput) (*entity.Product, error) {
	var updated *entity.Product
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.NewProductRepository()

		product, err := findProduct(ctx, productRepo, id)
		if err != nil {
			return err
		}

		farmer, err := srv.callerFarmer(ctx, repoFactory.NewFarmerRepository(), actor, "only the owning farmer can edit this product")
		if err != nil {
			return err
		}
		if product.FarmerID != farmer.ID {
			return domainerrors.NewAuthorizationError("only the owning farmer can edit this product")
		}

		applyProductUpdates(product, input)
		if err := validateProduct(product); err != nil {
			return err
		}

		if err := productRepo.Update(ctx, product); err != nil {
			if errors.Is(err, repository.ErrVersionConflict) {
				return domainerrors.ErrConflict
			}

			return errors.Wrap(err, "failed to update product")
		}
		updated = product

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func applyProductUpdates(product *entity.Product, input usecase.UpdateProductInput) {
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.PricePerUnit != nil {
		product.PricePerUnit = *input.PricePerUnit
	}
	if input.AvailableQuantity != nil {
		product.AvailableQuantity = *input.AvailableQuantity
	}
	if input.MinOrderQuantity != nil {
		product.MinOrderQuantity = *input.MinOrderQuantity
	}
	if input.IsAvailable != nil {
		product.IsAvailable = *input.IsAvailable
	}
	if input.ImageURL != nil {
		product.ImageURL = *input.ImageURL
	}
}

func validateProduct(product *entity.Product) error {
	switch {
	case product.Name == "":
		return domainerrors.NewValidationError("product name cannot be empty")
	case product.PricePerUnit.IsNegative():
		return domainerrors.NewValidationError("price per unit must not be negative")
	case product.AvailableQuantity < 0:
		return domainerrors.NewValidationError("available quantity must not be negative")
	case product.MinOrderQuantity < 1:
		return domainerrors.NewValidationError("minimum order quantity must be at least 1")
	}

	return nil
}

func (srv *productService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return findProduct(ctx, srv.productRepo, id)
}

// SearchProducts returns available products of active farmers. Price bounds are inclusive.
func (srv *productService) SearchProducts(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	if filter.MinPrice != nil && filter.MinPrice.IsNegative() {
		return nil, domainerrors.NewValidationError("minPrice must not be negative")
	}
	if filter.MaxPrice != nil && filter.MaxPrice.IsNegative() {
		return nil, domainerrors.NewValidationError("maxPrice must not be negative")
	}
	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return nil, domainerrors.NewValidationError("minPrice must not exceed maxPrice")
	}

	products, err := srv.productRepo.Search(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search products")
	}

	return products, nil
}

func (srv *productService) ProductsByFarmer(ctx context.Context, farmerID uuid.UUID) ([]*entity.Product, error) {
	if _, err := findFarmer(ctx, srv.farmerRepo, farmerID); err != nil {
		return nil, err
	}

	products, err := srv.productRepo.FindByFarmer(ctx, farmerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list farmer products")
	}

	return products, nil
}

func (srv *productService) ListCategories(ctx context.Context) ([]*entity.ProductCategory, error) {
	categories, err := srv.categoryRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

// ComparePrices ranks the available products of a category, optionally within one province.
func (srv *productService) ComparePrices(ctx context.Context, input usecase.PriceComparisonInput) (*scoring.Result, error) {
	if _, err := srv.categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category")
	}
	if input.ProvinceID != "" {
		if _, err := srv.locationRepo.FindProvince(ctx, input.ProvinceID); err != nil {
			if errors.Is(err, repository.ErrLocationNotFound) {
				return nil, domainerrors.ErrLocationNotFound.WithDetails("unknown province " + input.ProvinceID)
			}

			return nil, errors.Wrap(err, "failed to find province")
		}
	}

	candidates, err := srv.productRepo.Search(ctx, entity.ProductFilter{CategoryID: input.CategoryID, ProvinceID: input.ProvinceID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load price comparison candidates")
	}

	result := scoring.Rank(candidates, input.Origin)
	srv.log(ctx).Debug("Ranked price comparison", slog.String("categoryID", input.CategoryID), slog.Int("options", len(result.Products)))

	return &result, nil
}

func (srv *productService) requireCategory(ctx context.Context, id string) error {
	_, err := srv.categoryRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrCategoryNotFound) {
		return domainerrors.NewValidationError("unknown category %q", id)
	}
	if err != nil {
		return errors.Wrap(err, "failed to find category")
	}

	return nil
}

// callerFarmer resolves the actor's farmer profile. Having none is an authorization failure.
func (srv *productService) callerFarmer(ctx context.Context, repo repository.FarmerRepository, actor usecase.Actor, denied string) (*entity.Farmer, error) {
	farmer, err := repo.FindByUserID(ctx, actor.UserID)
	if errors.Is(err, repository.ErrFarmerNotFound) {
		return nil, domainerrors.NewAuthorizationError("%s", denied)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find farmer profile")
	}

	return farmer, nil
}

func findProduct(ctx context.Context, repo repository.ProductRepository, id uuid.UUID) (*entity.Product, error) {
	product, err := repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, domainerrors.ErrProductNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}
