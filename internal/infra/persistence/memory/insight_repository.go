package memory

import (
	"context"
	"slices"

	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/repository"

	"github.com/google/uuid"
)

type insightRepository struct {
	acc access
}

// NewInsightRepository creates an insight cache backed by the store.
func NewInsightRepository(store *Store) repository.InsightRepository {
	return &insightRepository{acc: store}
}

func (repo *insightRepository) SaveDemandPrediction(_ context.Context, prediction *entity.DemandPrediction) error {
	return repo.acc.write(func(t *tables) error {
		if prediction.ID == uuid.Nil {
			prediction.ID = uuid.New()
		}
		prediction.CreatedAt = repo.acc.now()
		t.predictions = append(t.predictions, *prediction)

		return nil
	})
}

func (repo *insightRepository) FindDemandPredictions(_ context.Context, categoryID, provinceID string) ([]*entity.DemandPrediction, error) {
	var predictions []*entity.DemandPrediction
	err := repo.acc.read(func(t *tables) error {
		for _, p := range slices.Backward(t.predictions) {
			if p.CategoryID == categoryID && p.ProvinceID == provinceID {
				predictions = append(predictions, &p)
			}
		}

		return nil
	})

	return predictions, err
}

func (repo *insightRepository) SaveRecommendation(_ context.Context, recommendation *entity.Recommendation) error {
	return repo.acc.write(func(t *tables) error {
		if _, ok := t.products[recommendation.ProductID]; !ok {
			return repository.ErrProductNotFound
		}
		if recommendation.ID == uuid.Nil {
			recommendation.ID = uuid.New()
		}
		recommendation.CreatedAt = repo.acc.now()
		stored := *recommendation
		stored.Product = nil
		t.recommendations = append(t.recommendations, stored)

		return nil
	})
}

func (repo *insightRepository) FindRecommendations(_ context.Context, userID uuid.UUID) ([]*entity.Recommendation, error) {
	var recommendations []*entity.Recommendation
	err := repo.acc.read(func(t *tables) error {
		for _, r := range t.recommendations {
			if r.UserID != userID {
				continue
			}
			p, ok := t.products[r.ProductID]
			if !ok {
				continue
			}
			r.Product = t.productView(p)
			recommendations = append(recommendations, &r)
		}

		return nil
	})

	return recommendations, err
}

func (repo *insightRepository) DeleteRecommendations(_ context.Context, userID uuid.UUID) error {
	return repo.acc.write(func(t *tables) error {
		t.recommendations = slices.DeleteFunc(slices.Clone(t.recommendations), func(r entity.Recommendation) bool {
			return r.UserID == userID
		})

		return nil
	})
}

// LockRecommendations is a no-op: a transaction already holds the store's write lock.
func (repo *insightRepository) LockRecommendations(context.Context, uuid.UUID) error {
	return nil
}
