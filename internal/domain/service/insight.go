package service

import (
	"context"

	"agriconnect/internal/domain/entity"

	"github.com/google/uuid"
)

// DemandPredictor estimates near-term demand for a category in a province.
// Implementations may be placeholders; the Model field of the result names the strategy.
type DemandPredictor interface {
	PredictDemand(ctx context.Context, categoryID, provinceID string) (*entity.DemandPrediction, error)
}

// Recommender picks up to limit products for a user.
// The result is a best-effort suggestion list, not a verified ranking.
type Recommender interface {
	Recommend(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Recommendation, error)
}
