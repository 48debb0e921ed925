package usecase

import (
	"context"

	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/scoring"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/shopspring/decimal"
)

// CreateProductInput represents the input for listing a new product.
// Nil AvailableQuantity, MinOrderQuantity and IsAvailable default to 0, 1 and true.
type CreateProductInput struct {
	CategoryID        *string
	Name              string
	NameKinyarwanda   string
	Description       string
	Unit              string
	PricePerUnit      *decimal.Decimal
	AvailableQuantity *int
	MinOrderQuantity  *int
	IsAvailable       *bool
	ImageURL          string
}

// UpdateProductInput represents a partial product edit. Nil fields are kept.
type UpdateProductInput struct {
	Name              *string
	Description       *string
	PricePerUnit      *decimal.Decimal
	AvailableQuantity *int
	MinOrderQuantity  *int
	IsAvailable       *bool
	ImageURL          *string
}

// PriceComparisonInput selects the candidates of a price comparison.
type PriceComparisonInput struct {
	CategoryID string
	ProvinceID string
	Origin     *orb.Point // requester position, enables the distance term
}

// ProductUsecase defines the catalog use cases
type ProductUsecase interface {
	CreateProduct(ctx context.Context, actor Actor, input CreateProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, actor Actor, id uuid.UUID, input UpdateProductInput) (*entity.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	SearchProducts(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error)
	ProductsByFarmer(ctx context.Context, farmerID uuid.UUID) ([]*entity.Product, error)
	ListCategories(ctx context.Context) ([]*entity.ProductCategory, error)
	ComparePrices(ctx context.Context, input PriceComparisonInput) (*scoring.Result, error)
}
