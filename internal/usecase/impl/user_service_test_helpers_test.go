package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"agriconnect/config"
	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/infra/persistence/memory"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Order:   &config.OrderConfig{MaxStockRetries: 3},
		Insight: &config.InsightConfig{RecommendationLimit: 3},
	}
}

func strPtr(s string) *string { return &s }

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

func floatPtr(v float64) *float64 { return &v }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)

	return &d
}

// testEnv is a memory store holding a small Rwandan location tree and two categories.
type testEnv struct {
	store     *memory.Store
	txManager repository.TransactionManager
	repos     repository.RepositoryFactory
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	env := &testEnv{
		store:     store,
		txManager: memory.NewTransactionManager(store),
		repos:     store.Repositories(),
	}

	ctx := context.Background()
	locations := env.repos.NewLocationRepository()
	require.NoError(t, locations.SaveProvince(ctx, &entity.Province{ID: "kigali", Name: "Kigali City"}))
	require.NoError(t, locations.SaveProvince(ctx, &entity.Province{ID: "northern", Name: "Northern Province"}))
	require.NoError(t, locations.SaveDistrict(ctx, &entity.District{ID: "gasabo", ProvinceID: "kigali", Name: "Gasabo"}))
	require.NoError(t, locations.SaveDistrict(ctx, &entity.District{ID: "musanze", ProvinceID: "northern", Name: "Musanze"}))
	require.NoError(t, locations.SaveSector(ctx, &entity.Sector{ID: "remera", DistrictID: "gasabo", Name: "Remera"}))
	require.NoError(t, locations.SaveSector(ctx, &entity.Sector{ID: "muhoza", DistrictID: "musanze", Name: "Muhoza"}))

	categories := env.repos.NewCategoryRepository()
	require.NoError(t, categories.Save(ctx, &entity.ProductCategory{ID: "poultry", Name: "Poultry"}))
	require.NoError(t, categories.Save(ctx, &entity.ProductCategory{ID: "eggs", Name: "Eggs"}))

	return env
}

func (env *testEnv) user(t *testing.T, email string, role entity.Role) *entity.User {
	t.Helper()

	user := &entity.User{ID: uuid.New(), Email: email, FirstName: "Test", LastName: email, Role: role}
	require.NoError(t, env.repos.NewUserRepository().Create(context.Background(), user))

	return user
}

// farmer creates a farmer account with a profile in the given province and district.
func (env *testEnv) farmer(t *testing.T, email, provinceID, districtID string) *entity.Farmer {
	t.Helper()

	owner := env.user(t, email, entity.RoleFarmer)
	farmer := &entity.Farmer{
		ID:         uuid.New(),
		UserID:     owner.ID,
		FarmName:   email + " farm",
		ProvinceID: strPtr(provinceID),
		DistrictID: strPtr(districtID),
		IsActive:   true,
	}
	require.NoError(t, env.repos.NewFarmerRepository().Create(context.Background(), farmer))

	return farmer
}

func (env *testEnv) product(t *testing.T, farmer *entity.Farmer, categoryID, price string, quantity int) *entity.Product {
	t.Helper()

	product := &entity.Product{
		ID:                uuid.New(),
		FarmerID:          farmer.ID,
		CategoryID:        strPtr(categoryID),
		Name:              categoryID + " " + price,
		Unit:              "kg",
		PricePerUnit:      decimal.RequireFromString(price),
		AvailableQuantity: quantity,
		MinOrderQuantity:  1,
		IsAvailable:       true,
	}
	require.NoError(t, env.repos.NewProductRepository().Create(context.Background(), product))

	return product
}
