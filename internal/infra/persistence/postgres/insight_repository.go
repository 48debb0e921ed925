package postgres

import (
	"context"

	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type insightRepository struct {
	db *gorm.DB
}

// NewInsightRepository creates a GORM-backed cache for demand predictions and recommendations.
func NewInsightRepository(db *gorm.DB) repository.InsightRepository {
	return &insightRepository{db: db}
}

func (repo *insightRepository) SaveDemandPrediction(ctx context.Context, prediction *entity.DemandPrediction) error {
	if prediction.ID == uuid.Nil {
		prediction.ID = uuid.New()
	}
	predictionM := &model.DemandPredictionModel{
		ID:              prediction.ID,
		CategoryID:      prediction.CategoryID,
		ProvinceID:      prediction.ProvinceID,
		PredictedDemand: prediction.PredictedDemand,
		ConfidenceScore: prediction.ConfidenceScore,
		Model:           prediction.Model,
		PredictionDate:  prediction.PredictionDate,
	}
	if err := repo.db.WithContext(ctx).Create(predictionM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save demand prediction")
	}
	prediction.CreatedAt = predictionM.CreatedAt

	return nil
}

func (repo *insightRepository) FindDemandPredictions(ctx context.Context, categoryID, provinceID string) ([]*entity.DemandPrediction, error) {
	var predictionMs []model.DemandPredictionModel
	err := repo.db.WithContext(ctx).
		Where("product_category_id = ? AND province_id = ?", categoryID, provinceID).
		Order("created_at DESC, id DESC").
		Find(&predictionMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list demand predictions")
	}

	predictions := make([]*entity.DemandPrediction, 0, len(predictionMs))
	for _, p := range predictionMs {
		predictions = append(predictions, &entity.DemandPrediction{
			ID:              p.ID,
			CategoryID:      p.CategoryID,
			ProvinceID:      p.ProvinceID,
			PredictedDemand: p.PredictedDemand,
			ConfidenceScore: p.ConfidenceScore,
			Model:           p.Model,
			PredictionDate:  p.PredictionDate,
			CreatedAt:       p.CreatedAt,
		})
	}

	return predictions, nil
}

func (repo *insightRepository) SaveRecommendation(ctx context.Context, recommendation *entity.Recommendation) error {
	if recommendation.ID == uuid.Nil {
		recommendation.ID = uuid.New()
	}
	recommendationM := &model.RecommendationModel{
		ID:                 recommendation.ID,
		UserID:             recommendation.UserID,
		ProductID:          recommendation.ProductID,
		SimilarityScore:    recommendation.SimilarityScore,
		RecommendationType: string(recommendation.RecommendationType),
	}
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(recommendationM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrProductNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to save recommendation")
	}
	recommendation.CreatedAt = recommendationM.CreatedAt

	return nil
}

// FindRecommendations returns the cached recommendations of a user. Entries whose product is gone are skipped.
func (repo *insightRepository) FindRecommendations(ctx context.Context, userID uuid.UUID) ([]*entity.Recommendation, error) {
	var recommendationMs []model.RecommendationModel
	err := repo.db.WithContext(ctx).
		Preload("Product.Farmer.User").
		Where("user_id = ?", userID).
		Order("created_at ASC, similarity_score DESC").
		Find(&recommendationMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recommendations")
	}

	recommendations := make([]*entity.Recommendation, 0, len(recommendationMs))
	for _, r := range recommendationMs {
		if r.Product == nil {
			continue
		}
		recommendations = append(recommendations, &entity.Recommendation{
			ID:                 r.ID,
			UserID:             r.UserID,
			ProductID:          r.ProductID,
			SimilarityScore:    r.SimilarityScore,
			RecommendationType: entity.RecommendationType(r.RecommendationType),
			CreatedAt:          r.CreatedAt,
			Product:            toProductDomain(r.Product),
		})
	}

	return recommendations, nil
}

func (repo *insightRepository) DeleteRecommendations(ctx context.Context, userID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.RecommendationModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete recommendations")
	}

	return nil
}

// LockRecommendations takes a row lock on the owning user. A missing user locks nothing.
func (repo *insightRepository) LockRecommendations(ctx context.Context, userID uuid.UUID) error {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", userID).
		Limit(1).
		Find(&userM).Error
	if err != nil {
		return errors.Wrap(err, "failed to lock user for recommendations")
	}

	return nil
}
