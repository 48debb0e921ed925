package mocks

import (
	"context"

	"agriconnect/internal/domain/entity"
	"agriconnect/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// InsightUsecase is a mock usecase.InsightUsecase.
type InsightUsecase struct {
	mock.Mock
}

var _ usecase.InsightUsecase = (*InsightUsecase)(nil)

func (m *InsightUsecase) DemandPredictions(ctx context.Context, categoryID, provinceID string) ([]*entity.DemandPrediction, error) {
	args := m.Called(ctx, categoryID, provinceID)

	predictions, _ := args.Get(0).([]*entity.DemandPrediction)

	return predictions, args.Error(1)
}

func (m *InsightUsecase) Recommendations(ctx context.Context, userID uuid.UUID) ([]*entity.Recommendation, error) {
	args := m.Called(ctx, userID)

	recommendations, _ := args.Get(0).([]*entity.Recommendation)

	return recommendations, args.Error(1)
}

func (m *InsightUsecase) RefreshRecommendations(ctx context.Context, userID uuid.UUID) ([]*entity.Recommendation, error) {
	args := m.Called(ctx, userID)

	recommendations, _ := args.Get(0).([]*entity.Recommendation)

	return recommendations, args.Error(1)
}
