package insight

import (
	"context"

	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

//nolint:gochecknoglobals
var (
	scoreStep  = decimal.NewFromFloat(0.1)
	scoreFloor = decimal.NewFromFloat(0.7)
)

type catalogRecommender struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
}

// NewCatalogRecommender returns a recommender that suggests the first orderable products
// of the catalog in listing order, leaving out products the user already received in a
// delivered order. Scores decrease by rank and carry no meaning beyond it.
func NewCatalogRecommender(products repository.ProductRepository, orders repository.OrderRepository) service.Recommender {
	return &catalogRecommender{products: products, orders: orders}
}

func (r *catalogRecommender) Recommend(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.Recommendation, error) {
	if limit <= 0 {
		return []*entity.Recommendation{}, nil
	}

	products, err := r.products.Search(ctx, entity.ProductFilter{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list catalog for recommendations")
	}
	bought, err := r.deliveredProducts(ctx, userID)
	if err != nil {
		return nil, err
	}

	recommendations := make([]*entity.Recommendation, 0, limit)
	for _, product := range products {
		if len(recommendations) == limit {
			break
		}
		if !product.IsOrderable() {
			continue
		}
		if _, ok := bought[product.ID]; ok {
			continue
		}

		rank := decimal.NewFromInt(int64(len(recommendations)))
		score := decimal.Max(decimal.NewFromInt(1).Sub(scoreStep.Mul(rank)), scoreFloor)

		recommendations = append(recommendations, &entity.Recommendation{
			UserID:             userID,
			ProductID:          product.ID,
			SimilarityScore:    score.Round(4),
			RecommendationType: entity.RecommendationTypeLocation,
			Product:            product,
		})
	}

	return recommendations, nil
}

func (r *catalogRecommender) deliveredProducts(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	orders, err := r.orders.FindByCustomer(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders for recommendations")
	}

	bought := make(map[uuid.UUID]struct{})
	for _, order := range orders {
		if order.Status != entity.OrderStatusDelivered {
			continue
		}
		for _, item := range order.Items {
			bought[item.ProductID] = struct{}{}
		}
	}

	return bought, nil
}
