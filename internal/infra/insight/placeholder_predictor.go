// Package insight ships the default demand prediction and recommendation strategies.
// Neither is a learned model; both produce stable placeholder output that callers cache.
package insight

import (
	"context"
	"hash/fnv"
	"time"

	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/service"

	"github.com/shopspring/decimal"
)

// PlaceholderModel is recorded on every prediction made by the placeholder strategy.
const PlaceholderModel = "placeholder"

const (
	minDemand       = 30000
	demandSpread    = 50000
	minConfidence   = 8500 // basis points
	confidenceRange = 1000 // basis points
)

type placeholderPredictor struct {
	now func() time.Time
}

// NewPlaceholderPredictor returns a predictor whose estimates are derived from a hash of
// the (category, province) pair. It is non-predictive: the same pair always gets the same
// value in [30000, 80000] with a confidence in [0.85, 0.95].
func NewPlaceholderPredictor() service.DemandPredictor {
	return &placeholderPredictor{now: time.Now}
}

func (p *placeholderPredictor) PredictDemand(_ context.Context, categoryID, provinceID string) (*entity.DemandPrediction, error) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(categoryID))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(provinceID))
	sum := h.Sum64()

	demand := minDemand + int64(sum%(demandSpread+1))
	confidence := minConfidence + int64((sum>>32)%(confidenceRange+1))

	return &entity.DemandPrediction{
		CategoryID:      categoryID,
		ProvinceID:      provinceID,
		PredictedDemand: decimal.NewFromInt(demand),
		ConfidenceScore: decimal.New(confidence, -4),
		Model:           PlaceholderModel,
		PredictionDate:  p.now().UTC(),
	}, nil
}
