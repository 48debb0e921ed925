package repository

import (
	"context"

	"agriconnect/internal/domain/entity"

	"github.com/google/uuid"
)

// InsightRepository caches derived demand predictions and recommendations.
// Its contents are safe to drop and regenerate.
type InsightRepository interface {
	SaveDemandPrediction(ctx context.Context, prediction *entity.DemandPrediction) error

	// FindDemandPredictions returns the stored predictions for the pair, newest first.
	FindDemandPredictions(ctx context.Context, categoryID, provinceID string) ([]*entity.DemandPrediction, error)

	SaveRecommendation(ctx context.Context, recommendation *entity.Recommendation) error

	// FindRecommendations returns a user's recommendations in creation order with the
	// product, its farmer and the farmer's user joined. Entries whose product is gone are skipped.
	FindRecommendations(ctx context.Context, userID uuid.UUID) ([]*entity.Recommendation, error)

	DeleteRecommendations(ctx context.Context, userID uuid.UUID) error

	// LockRecommendations serializes writers of one user's recommendations until the
	// surrounding transaction ends. Outside a transaction it has no lasting effect.
	LockRecommendations(ctx context.Context, userID uuid.UUID) error
}
