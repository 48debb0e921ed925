package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/service"
	"agriconnect/internal/infra/insight"
	"agriconnect/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInsightService(env *testEnv) usecase.InsightUsecase {
	return NewInsightService(InsightServiceParams{
		TxManager:    env.txManager,
		InsightRepo:  env.repos.NewInsightRepository(),
		CategoryRepo: env.repos.NewCategoryRepository(),
		LocationRepo: env.repos.NewLocationRepository(),
		Predictor:    insight.NewPlaceholderPredictor(),
		Recommender:  insight.NewCatalogRecommender(env.repos.NewProductRepository(), env.repos.NewOrderRepository()),
		Config:       newTestConfig(),
		Logger:       newDiscardLogger(),
	})
}

func TestInsightService_DemandPredictionsAreCached(t *testing.T) {
	env := newTestEnv(t)
	srv := newInsightService(env)
	ctx := context.Background()

	first, err := srv.DemandPredictions(ctx, "eggs", "kigali")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, "eggs", first[0].CategoryID)
	assert.Equal(t, "kigali", first[0].ProvinceID)

	second, err := srv.DemandPredictions(ctx, "eggs", "kigali")
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)

	other, err := srv.DemandPredictions(ctx, "eggs", "northern")
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.NotEqual(t, first[0].ID, other[0].ID)
}

func TestInsightService_DemandPredictionsRejections(t *testing.T) {
	env := newTestEnv(t)
	srv := newInsightService(env)
	ctx := context.Background()

	_, err := srv.DemandPredictions(ctx, "", "kigali")
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = srv.DemandPredictions(ctx, "eggs", "")
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = srv.DemandPredictions(ctx, "goats", "kigali")
	assert.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)

	_, err = srv.DemandPredictions(ctx, "eggs", "atlantis")
	assert.ErrorIs(t, err, domainerrors.ErrLocationNotFound)
}

func TestInsightService_Recommendations(t *testing.T) {
	env := newTestEnv(t)
	farmer := env.farmer(t, "farmer@example.com", "kigali", "gasabo")
	for _, price := range []string{"1000", "2000", "3000", "4000"} {
		env.product(t, farmer, "eggs", price, 5)
	}
	env.product(t, farmer, "poultry", "500", 0)
	customer := env.user(t, "customer@example.com", entity.RoleCustomer)
	srv := newInsightService(env)
	ctx := context.Background()

	first, err := srv.Recommendations(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, first, 3)
	for _, r := range first {
		assert.Equal(t, customer.ID, r.UserID)
		require.NotNil(t, r.Product)
		assert.True(t, r.Product.IsOrderable())
	}

	cached, err := srv.Recommendations(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, cached, 3)
	assert.Equal(t, first[0].ID, cached[0].ID)

	refreshed, err := srv.RefreshRecommendations(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, refreshed, 3)
	assert.NotEqual(t, first[0].ID, refreshed[0].ID)
	assert.Equal(t, first[0].ProductID, refreshed[0].ProductID)

	afterRefresh, err := srv.Recommendations(ctx, customer.ID)
	require.NoError(t, err)
	assert.Len(t, afterRefresh, 3)
}

func TestInsightService_RecommendationsWithEmptyCatalog(t *testing.T) {
	env := newTestEnv(t)
	srv := newInsightService(env)

	recommendations, err := srv.Recommendations(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, recommendations)
}

// slowRecommender holds every call long enough for concurrent cache misses to overlap.
type slowRecommender struct {
	next  service.Recommender
	delay time.Duration
}

func (r *slowRecommender) Recommend(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Recommendation, error) {
	time.Sleep(r.delay)

	return r.next.Recommend(ctx, userID, limit)
}

func TestInsightService_ConcurrentFirstRecommendations(t *testing.T) {
	env := newTestEnv(t)
	farmer := env.farmer(t, "farmer@example.com", "kigali", "gasabo")
	for _, price := range []string{"1000", "2000", "3000", "4000"} {
		env.product(t, farmer, "eggs", price, 5)
	}
	customer := env.user(t, "customer@example.com", entity.RoleCustomer)

	recommender := &slowRecommender{
		next:  insight.NewCatalogRecommender(env.repos.NewProductRepository(), env.repos.NewOrderRepository()),
		delay: 20 * time.Millisecond,
	}
	srv := NewInsightService(InsightServiceParams{
		TxManager:    env.txManager,
		InsightRepo:  env.repos.NewInsightRepository(),
		CategoryRepo: env.repos.NewCategoryRepository(),
		LocationRepo: env.repos.NewLocationRepository(),
		Predictor:    insight.NewPlaceholderPredictor(),
		Recommender:  recommender,
		Config:       newTestConfig(),
		Logger:       newDiscardLogger(),
	})

	const callers = 4
	results := make([][]*entity.Recommendation, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = srv.Recommendations(context.Background(), customer.ID)
		}()
	}
	wg.Wait()

	for i := range callers {
		require.NoError(t, errs[i])
		assert.Len(t, results[i], 3)
	}

	stored, err := env.repos.NewInsightRepository().FindRecommendations(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 3)
	for i := range callers {
		assert.Equal(t, stored[0].ID, results[i][0].ID)
	}
}
