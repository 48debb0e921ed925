package usecase

import (
	"context"

	"agriconnect/internal/domain/entity"

	"github.com/google/uuid"
)

// InsightUsecase serves cached demand predictions and recommendations, generating them
// through the configured strategies on a cache miss.
type InsightUsecase interface {
	DemandPredictions(ctx context.Context, categoryID, provinceID string) ([]*entity.DemandPrediction, error)
	Recommendations(ctx context.Context, userID uuid.UUID) ([]*entity.Recommendation, error)
	// RefreshRecommendations drops the user's stored recommendations and generates new ones.
	RefreshRecommendations(ctx context.Context, userID uuid.UUID) ([]*entity.Recommendation, error)
}
