package seed

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"agriconnect/config"
	"agriconnect/internal/domain/entity"
	"agriconnect/internal/infra/auth"
	"agriconnect/internal/infra/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newSeeder(store *memory.Store) *Seeder {
	hasher := auth.NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}})

	return NewSeeder(memory.NewTransactionManager(store), hasher, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLoadReference(t *testing.T) {
	ref, err := LoadReference()
	require.NoError(t, err)

	assert.Len(t, ref.Provinces, 5)
	assert.Len(t, ref.Districts, 30)
	assert.Len(t, ref.Sectors, 32)
	assert.Len(t, ref.Categories, 3)

	assert.Equal(t, entity.Province{ID: "kigali", Name: "Kigali City", NameKinyarwanda: "Umujyi wa Kigali"}, ref.Provinces[0])
	assert.Equal(t, "kigali", ref.Districts[0].ProvinceID)
	assert.Equal(t, "gasabo", ref.Sectors[0].DistrictID)
	assert.Equal(t, "Ifumbire", ref.Categories[2].NameKinyarwanda)
}

func TestLoadSamples(t *testing.T) {
	samples, err := LoadSamples()
	require.NoError(t, err)

	assert.Equal(t, "password123", samples.Password)
	assert.Len(t, samples.Users, 5)
	require.Len(t, samples.Farmers, 2)
	require.Len(t, samples.Products, 2)

	assert.Equal(t, "4.8", samples.Farmers[0].Rating.String())
	assert.Equal(t, 24, samples.Farmers[0].TotalRatings)
	assert.InDelta(t, -1.9441, samples.Farmers[0].Latitude, 1e-9)
	assert.Equal(t, "4500", samples.Products[0].PricePerUnit.String())
	assert.Equal(t, entity.RoleAdmin, samples.Users[4].Role)
}

func TestSampleID_Stable(t *testing.T) {
	assert.Equal(t, SampleID("farm1"), SampleID("farm1"))
	assert.NotEqual(t, SampleID("farm1"), SampleID("farm2"))
}

func TestSeeder_SeedsHierarchyAndSamples(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seeder := newSeeder(store)

	ref, err := LoadReference()
	require.NoError(t, err)
	samples, err := LoadSamples()
	require.NoError(t, err)

	require.NoError(t, seeder.SeedReference(ctx, ref))
	require.NoError(t, seeder.SeedSamples(ctx, samples))

	repos := store.Repositories()

	provinces, err := repos.NewLocationRepository().ListProvinces(ctx)
	require.NoError(t, err)
	require.Len(t, provinces, 5)
	assert.Equal(t, "Eastern Province", provinces[0].Name)

	districts, err := repos.NewLocationRepository().ListDistricts(ctx, "kigali")
	require.NoError(t, err)
	assert.Len(t, districts, 3)

	farmer, err := repos.NewFarmerRepository().FindByID(ctx, SampleID("farm1"))
	require.NoError(t, err)
	assert.Equal(t, "Baptiste Poultry Farm", farmer.FarmName)
	assert.Equal(t, "Jean Baptiste", farmer.DisplayName())
	assert.Equal(t, "115.2", farmer.RatingSum.String())

	customer, err := repos.NewUserRepository().FindByID(ctx, SampleID("customer1"))
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte("password123")))

	products, err := repos.NewProductRepository().FindByFarmer(ctx, SampleID("farm1"))
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestSeeder_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seeder := newSeeder(store)

	samples, err := LoadSamples()
	require.NoError(t, err)

	require.NoError(t, seeder.SeedSamples(ctx, samples))
	require.NoError(t, seeder.SeedSamples(ctx, samples))

	users, err := store.Repositories().NewUserRepository().Search(ctx, entity.UserFilter{})
	require.NoError(t, err)
	assert.Len(t, users, 5)

	farmers, err := store.Repositories().NewFarmerRepository().FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, farmers, 2)
}
