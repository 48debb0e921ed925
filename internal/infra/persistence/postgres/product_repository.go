package postgres

import (
	"context"
	"time"

	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a GORM-backed product repository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	product.Version = 1
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(productM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrFarmerNotFound
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.NewValidationError("product quantities are out of range")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create product")
	}

	product.CreatedAt = productM.CreatedAt
	product.UpdatedAt = productM.UpdatedAt

	return nil
}

func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	if err := repo.db.WithContext(ctx).Preload("Farmer.User").First(&productM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

func (repo *productRepository) FindByFarmer(ctx context.Context, farmerID uuid.UUID) ([]*entity.Product, error) {
	return repo.list(repo.db.WithContext(ctx).Where("products.farmer_id = ?", farmerID))
}

// Search only returns available products whose farmer is active.
func (repo *productRepository) Search(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	query := repo.db.WithContext(ctx).
		Joins("JOIN farmers ON farmers.id = products.farmer_id AND farmers.is_active").
		Preload("Farmer.User").
		Where("products.is_available = ?", true)

	if filter.CategoryID != "" {
		query = query.Where("products.category_id = ?", filter.CategoryID)
	}
	if filter.ProvinceID != "" {
		query = query.Where("farmers.province_id = ?", filter.ProvinceID)
	}
	if filter.DistrictID != "" {
		query = query.Where("farmers.district_id = ?", filter.DistrictID)
	}
	if filter.MinPrice != nil {
		query = query.Where("products.price_per_unit >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("products.price_per_unit <= ?", *filter.MaxPrice)
	}

	return repo.list(query)
}

func (repo *productRepository) FindAll(ctx context.Context) ([]*entity.Product, error) {
	return repo.list(repo.db.WithContext(ctx).Preload("Farmer.User"))
}

func (repo *productRepository) list(query *gorm.DB) ([]*entity.Product, error) {
	var productMs []model.ProductModel
	if err := query.Order("products.created_at ASC, products.id ASC").Find(&productMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(productMs))
	for i := range productMs {
		products = append(products, toProductDomain(&productMs[i]))
	}

	return products, nil
}

// Update writes the product only if its version still matches, then bumps the version.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	now := time.Now().UTC()
	result := repo.db.WithContext(ctx).Model(&model.ProductModel{}).
		Where("id = ? AND version = ?", product.ID, product.Version).
		Updates(map[string]any{
			"category_id":        product.CategoryID,
			"name":               product.Name,
			"name_kinyarwanda":   product.NameKinyarwanda,
			"description":        product.Description,
			"unit":               product.Unit,
			"price_per_unit":     product.PricePerUnit,
			"available_quantity": product.AvailableQuantity,
			"min_order_quantity": product.MinOrderQuantity,
			"is_available":       product.IsAvailable,
			"image_url":          product.ImageURL,
			"version":            gorm.Expr("version + 1"),
			"updated_at":         now,
		})
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.NewValidationError("product quantities are out of range")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product")
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := repo.db.WithContext(ctx).Model(&model.ProductModel{}).Where("id = ?", product.ID).Count(&count).Error; err != nil {
			return errors.Wrap(err, "failed to check product existence")
		}
		if count == 0 {
			return repository.ErrProductNotFound
		}

		return repository.ErrVersionConflict
	}

	product.Version++
	product.UpdatedAt = now

	return nil
}

// --- Mapper Functions ---

func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:                data.ID,
		FarmerID:          data.FarmerID,
		CategoryID:        data.CategoryID,
		Name:              data.Name,
		NameKinyarwanda:   data.NameKinyarwanda,
		Description:       data.Description,
		Unit:              data.Unit,
		PricePerUnit:      data.PricePerUnit,
		AvailableQuantity: data.AvailableQuantity,
		MinOrderQuantity:  data.MinOrderQuantity,
		IsAvailable:       data.IsAvailable,
		ImageURL:          data.ImageURL,
		Version:           data.Version,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
		Farmer:            toFarmerDomain(data.Farmer),
	}
}

func fromProductDomain(data *entity.Product) *model.ProductModel {
	return &model.ProductModel{
		ID:                data.ID,
		FarmerID:          data.FarmerID,
		CategoryID:        data.CategoryID,
		Name:              data.Name,
		NameKinyarwanda:   data.NameKinyarwanda,
		Description:       data.Description,
		Unit:              data.Unit,
		PricePerUnit:      data.PricePerUnit,
		AvailableQuantity: data.AvailableQuantity,
		MinOrderQuantity:  data.MinOrderQuantity,
		IsAvailable:       data.IsAvailable,
		ImageURL:          data.ImageURL,
		Version:           data.Version,
		CreatedAt:         data.CreatedAt,
		UpdatedAt:         data.UpdatedAt,
	}
}
