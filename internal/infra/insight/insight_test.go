package insight

import (
	"context"
	"testing"
	"time"

	"agriconnect/internal/domain/entity"
	"agriconnect/internal/infra/persistence/memory"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholderPredictor_DeterministicAndBounded(t *testing.T) {
	predictor := NewPlaceholderPredictor().(*placeholderPredictor)
	fixed := time.Date(2026, 3, 1, 8, 0, 0, 0, time.FixedZone("CAT", 2*3600))
	predictor.now = func() time.Time { return fixed }

	pairs := [][2]string{{"eggs", "kigali"}, {"poultry", "kigali"}, {"eggs", "northern"}, {"", ""}}
	for _, pair := range pairs {
		first, err := predictor.PredictDemand(context.Background(), pair[0], pair[1])
		require.NoError(t, err)
		second, err := predictor.PredictDemand(context.Background(), pair[0], pair[1])
		require.NoError(t, err)

		assert.True(t, first.PredictedDemand.Equal(second.PredictedDemand))
		assert.True(t, first.ConfidenceScore.Equal(second.ConfidenceScore))

		assert.True(t, first.PredictedDemand.GreaterThanOrEqual(decimal.NewFromInt(30000)))
		assert.True(t, first.PredictedDemand.LessThanOrEqual(decimal.NewFromInt(80000)))
		assert.True(t, first.ConfidenceScore.GreaterThanOrEqual(decimal.RequireFromString("0.85")))
		assert.True(t, first.ConfidenceScore.LessThanOrEqual(decimal.RequireFromString("0.95")))

		assert.Equal(t, pair[0], first.CategoryID)
		assert.Equal(t, pair[1], first.ProvinceID)
		assert.Equal(t, PlaceholderModel, first.Model)
		assert.Equal(t, time.UTC, first.PredictionDate.Location())
	}
}

func TestCatalogRecommender_TakesFirstOrderableProducts(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repositories()

	user := &entity.User{Email: "farmer@example.com", Role: entity.RoleFarmer}
	require.NoError(t, repos.NewUserRepository().Create(ctx, user))
	farmer := &entity.Farmer{UserID: user.ID, FarmName: "Farm", IsActive: true}
	require.NoError(t, repos.NewFarmerRepository().Create(ctx, farmer))

	var created []*entity.Product
	for i, qty := range []int{5, 0, 3, 8, 9} {
		p := &entity.Product{
			FarmerID:          farmer.ID,
			Name:              string(rune('A' + i)),
			Unit:              "kg",
			PricePerUnit:      decimal.NewFromInt(1000),
			AvailableQuantity: qty,
			MinOrderQuantity:  1,
			IsAvailable:       true,
		}
		require.NoError(t, repos.NewProductRepository().Create(ctx, p))
		created = append(created, p)
	}

	recommender := NewCatalogRecommender(repos.NewProductRepository(), repos.NewOrderRepository())
	userID := uuid.New()

	recs, err := recommender.Recommend(ctx, userID, 3)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	// The out-of-stock product is skipped.
	assert.Equal(t, []uuid.UUID{created[0].ID, created[2].ID, created[3].ID},
		[]uuid.UUID{recs[0].ProductID, recs[1].ProductID, recs[2].ProductID})
	assert.Equal(t, "1", recs[0].SimilarityScore.String())
	assert.Equal(t, "0.9", recs[1].SimilarityScore.String())
	assert.Equal(t, "0.8", recs[2].SimilarityScore.String())
	for _, rec := range recs {
		assert.Equal(t, userID, rec.UserID)
		assert.Equal(t, entity.RecommendationTypeLocation, rec.RecommendationType)
	}

	none, err := recommender.Recommend(ctx, userID, 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := recommender.Recommend(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "0.7", all[3].SimilarityScore.String())
}

func TestCatalogRecommender_SkipsDeliveredProducts(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repositories()

	owner := &entity.User{Email: "farmer@example.com", Role: entity.RoleFarmer}
	require.NoError(t, repos.NewUserRepository().Create(ctx, owner))
	farmer := &entity.Farmer{UserID: owner.ID, FarmName: "Farm", IsActive: true}
	require.NoError(t, repos.NewFarmerRepository().Create(ctx, farmer))
	customer := &entity.User{Email: "customer@example.com", Role: entity.RoleCustomer}
	require.NoError(t, repos.NewUserRepository().Create(ctx, customer))

	var created []*entity.Product
	for _, name := range []string{"eggs", "manure", "broilers"} {
		p := &entity.Product{
			FarmerID:          farmer.ID,
			Name:              name,
			Unit:              "kg",
			PricePerUnit:      decimal.NewFromInt(1000),
			AvailableQuantity: 10,
			MinOrderQuantity:  1,
			IsAvailable:       true,
		}
		require.NoError(t, repos.NewProductRepository().Create(ctx, p))
		created = append(created, p)
	}

	orders := repos.NewOrderRepository()
	placeOrder := func(product *entity.Product, status entity.OrderStatus) {
		order := &entity.Order{
			CustomerID:      customer.ID,
			FarmerID:        farmer.ID,
			Status:          status,
			DeliveryAddress: "Kigali",
			Items:           []*entity.OrderItem{entity.NewOrderItem(product.ID, 1, product.PricePerUnit)},
		}
		require.NoError(t, orders.Create(ctx, order))
	}
	placeOrder(created[0], entity.OrderStatusDelivered)
	placeOrder(created[1], entity.OrderStatusPending)

	recommender := NewCatalogRecommender(repos.NewProductRepository(), orders)

	recs, err := recommender.Recommend(ctx, customer.ID, 3)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, []uuid.UUID{created[1].ID, created[2].ID}, []uuid.UUID{recs[0].ProductID, recs[1].ProductID})

	// Another customer still sees the whole catalog.
	others, err := recommender.Recommend(ctx, uuid.New(), 3)
	require.NoError(t, err)
	assert.Len(t, others, 3)
}
