package impl

import (
	"context"
	"testing"

	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/scoring"
	"agriconnect/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductService(env *testEnv) usecase.ProductUsecase {
	return NewProductService(ProductServiceParams{
		TxManager:    env.txManager,
		ProductRepo:  env.repos.NewProductRepository(),
		FarmerRepo:   env.repos.NewFarmerRepository(),
		CategoryRepo: env.repos.NewCategoryRepository(),
		LocationRepo: env.repos.NewLocationRepository(),
		Logger:       newDiscardLogger(),
	})
}

func farmerActor(f *entity.Farmer) usecase.Actor {
	return usecase.Actor{UserID: f.UserID, Role: entity.RoleFarmer}
}

func TestProductService_CreateProductDefaults(t *testing.T) {
	env := newTestEnv(t)
	farmer := env.farmer(t, "owner@example.com", "kigali", "gasabo")
	srv := newProductService(env)

	product, err := srv.CreateProduct(context.Background(), farmerActor(farmer), usecase.CreateProductInput{
		CategoryID:   strPtr("eggs"),
		Name:         " Fresh eggs ",
		Unit:         "tray",
		PricePerUnit: decPtr("4500"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Fresh eggs", product.Name)
	assert.Equal(t, farmer.ID, product.FarmerID)
	assert.Zero(t, product.AvailableQuantity)
	assert.Equal(t, 1, product.MinOrderQuantity)
	assert.True(t, product.IsAvailable)
	assert.False(t, product.IsOrderable())
	assert.Equal(t, 1, product.Version)

	stored, err := srv.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("4500").Equal(stored.PricePerUnit))
}

func TestProductService_CreateProductRejections(t *testing.T) {
	env := newTestEnv(t)
	farmer := env.farmer(t, "owner@example.com", "kigali", "gasabo")
	customer := env.user(t, "customer@example.com", entity.RoleCustomer)
	srv := newProductService(env)

	valid := func() usecase.CreateProductInput {
		return usecase.CreateProductInput{Name: "Broilers", Unit: "kg", PricePerUnit: decPtr("3000")}
	}

	tests := []struct {
		name   string
		actor  usecase.Actor
		mutate func(*usecase.CreateProductInput)
		want   error
	}{
		{
			name:   "customer",
			actor:  usecase.Actor{UserID: customer.ID, Role: entity.RoleCustomer},
			mutate: func(*usecase.CreateProductInput) {},
			want:   domainerrors.ErrForbidden,
		},
		{
			name:   "missing name",
			actor:  farmerActor(farmer),
			mutate: func(in *usecase.CreateProductInput) { in.Name = " " },
			want:   domainerrors.ErrValidationFailed,
		},
		{
			name:   "missing unit",
			actor:  farmerActor(farmer),
			mutate: func(in *usecase.CreateProductInput) { in.Unit = "" },
			want:   domainerrors.ErrValidationFailed,
		},
		{
			name:   "missing price",
			actor:  farmerActor(farmer),
			mutate: func(in *usecase.CreateProductInput) { in.PricePerUnit = nil },
			want:   domainerrors.ErrValidationFailed,
		},
		{
			name:   "negative price",
			actor:  farmerActor(farmer),
			mutate: func(in *usecase.CreateProductInput) { in.PricePerUnit = decPtr("-1") },
			want:   domainerrors.ErrValidationFailed,
		},
		{
			name:   "negative stock",
			actor:  farmerActor(farmer),
			mutate: func(in *usecase.CreateProductInput) { in.AvailableQuantity = intPtr(-3) },
			want:   domainerrors.ErrValidationFailed,
		},
		{
			name:   "zero minimum",
			actor:  farmerActor(farmer),
			mutate: func(in *usecase.CreateProductInput) { in.MinOrderQuantity = intPtr(0) },
			want:   domainerrors.ErrValidationFailed,
		},
		{
			name:   "unknown category",
			actor:  farmerActor(farmer),
			mutate: func(in *usecase.CreateProductInput) { in.CategoryID = strPtr("goats") },
			want:   domainerrors.ErrValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid()
			tt.mutate(&input)

			_, err := srv.CreateProduct(context.Background(), tt.actor, input)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	products, err := srv.ProductsByFarmer(context.Background(), farmer.ID)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductService_UpdateProduct(t *testing.T) {
	env := newTestEnv(t)
	owner := env.farmer(t, "owner@example.com", "kigali", "gasabo")
	other := env.farmer(t, "other@example.com", "kigali", "gasabo")
	product := env.product(t, owner, "eggs", "4500", 10)
	srv := newProductService(env)
	ctx := context.Background()

	updated, err := srv.UpdateProduct(ctx, farmerActor(owner), product.ID, usecase.UpdateProductInput{
		PricePerUnit:      decPtr("4300"),
		AvailableQuantity: intPtr(25),
	})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("4300").Equal(updated.PricePerUnit))
	assert.Equal(t, 25, updated.AvailableQuantity)
	assert.Equal(t, product.Name, updated.Name)
	assert.Equal(t, 2, updated.Version)

	_, err = srv.UpdateProduct(ctx, farmerActor(other), product.ID, usecase.UpdateProductInput{AvailableQuantity: intPtr(0)})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = srv.UpdateProduct(ctx, farmerActor(owner), product.ID, usecase.UpdateProductInput{Name: strPtr("")})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = srv.UpdateProduct(ctx, farmerActor(owner), uuid.New(), usecase.UpdateProductInput{})
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)

	stored, err := srv.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, stored.AvailableQuantity)
	assert.Equal(t, 2, stored.Version)
}

func TestProductService_SearchProducts(t *testing.T) {
	env := newTestEnv(t)
	kigali := env.farmer(t, "kigali@example.com", "kigali", "gasabo")
	northern := env.farmer(t, "northern@example.com", "northern", "musanze")
	cheap := env.product(t, kigali, "eggs", "3000", 10)
	env.product(t, northern, "eggs", "4800", 10)
	env.product(t, kigali, "poultry", "6000", 10)
	srv := newProductService(env)
	ctx := context.Background()

	found, err := srv.SearchProducts(ctx, entity.ProductFilter{CategoryID: "eggs", ProvinceID: "kigali"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, cheap.ID, found[0].ID)

	bounded, err := srv.SearchProducts(ctx, entity.ProductFilter{MinPrice: decPtr("3000"), MaxPrice: decPtr("4800")})
	require.NoError(t, err)
	assert.Len(t, bounded, 2)

	_, err = srv.SearchProducts(ctx, entity.ProductFilter{MinPrice: decPtr("5000"), MaxPrice: decPtr("4000")})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = srv.SearchProducts(ctx, entity.ProductFilter{MinPrice: decPtr("-1")})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestProductService_ProductsByFarmer(t *testing.T) {
	env := newTestEnv(t)
	farmer := env.farmer(t, "owner@example.com", "kigali", "gasabo")
	env.product(t, farmer, "eggs", "4500", 0)
	srv := newProductService(env)

	products, err := srv.ProductsByFarmer(context.Background(), farmer.ID)
	require.NoError(t, err)
	assert.Len(t, products, 1)

	_, err = srv.ProductsByFarmer(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrFarmerNotFound)
}

func TestProductService_ListCategories(t *testing.T) {
	env := newTestEnv(t)
	srv := newProductService(env)

	categories, err := srv.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}

func TestProductService_ComparePrices(t *testing.T) {
	env := newTestEnv(t)
	first := env.farmer(t, "first@example.com", "kigali", "gasabo")
	second := env.farmer(t, "second@example.com", "kigali", "gasabo")
	third := env.farmer(t, "third@example.com", "northern", "musanze")
	env.product(t, second, "eggs", "4500", 10)
	cheapest := env.product(t, first, "eggs", "3000", 10)
	env.product(t, third, "eggs", "4800", 10)
	srv := newProductService(env)
	ctx := context.Background()

	result, err := srv.ComparePrices(ctx, usecase.PriceComparisonInput{CategoryID: "eggs"})
	require.NoError(t, err)
	require.Len(t, result.Products, 3)
	require.NotNil(t, result.Analysis)
	assert.Equal(t, int64(4100), result.Analysis.AveragePrice)
	assert.Equal(t, 3, result.Analysis.TotalOptions)
	assert.Equal(t, cheapest.ID, result.Products[0].Product.ID)

	var buckets []scoring.Recommendation
	for _, p := range result.Products {
		buckets = append(buckets, p.Recommendation)
	}
	assert.Equal(t, []scoring.Recommendation{scoring.BestValue, scoring.Premium, scoring.Premium}, buckets)
	assert.InDelta(t, -26.8, result.Products[0].PriceVariance, 1e-9)

	inKigali, err := srv.ComparePrices(ctx, usecase.PriceComparisonInput{CategoryID: "eggs", ProvinceID: "kigali"})
	require.NoError(t, err)
	assert.Len(t, inKigali.Products, 2)
}

func TestProductService_ComparePricesEmptyAndUnknown(t *testing.T) {
	env := newTestEnv(t)
	srv := newProductService(env)
	ctx := context.Background()

	empty, err := srv.ComparePrices(ctx, usecase.PriceComparisonInput{CategoryID: "poultry"})
	require.NoError(t, err)
	assert.Empty(t, empty.Products)
	assert.Nil(t, empty.Analysis)

	_, err = srv.ComparePrices(ctx, usecase.PriceComparisonInput{CategoryID: "goats"})
	assert.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)

	_, err = srv.ComparePrices(ctx, usecase.PriceComparisonInput{CategoryID: "eggs", ProvinceID: "atlantis"})
	assert.ErrorIs(t, err, domainerrors.ErrLocationNotFound)
}
