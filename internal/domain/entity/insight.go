package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecommendationType tells which signal produced a recommendation.
type RecommendationType string

const (
	RecommendationTypePrice    RecommendationType = "price"
	RecommendationTypeLocation RecommendationType = "location"
	RecommendationTypeQuality  RecommendationType = "quality"
)

// DemandPrediction is a cached demand estimate for a (category, province) pair.
// It is derived data and can be regenerated at any time.
type DemandPrediction struct {
	ID              uuid.UUID       `json:"id"`
	CategoryID      string          `json:"productCategoryId"`
	ProvinceID      string          `json:"provinceId"`
	PredictedDemand decimal.Decimal `json:"predictedDemand"`
	ConfidenceScore decimal.Decimal `json:"confidenceScore"`
	Model           string          `json:"model"` // Name of the strategy that produced the estimate.
	PredictionDate  time.Time       `json:"predictionDate"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// Recommendation is a cached product suggestion for a user.
type Recommendation struct {
	ID                 uuid.UUID          `json:"id"`
	UserID             uuid.UUID          `json:"userId"`
	ProductID          uuid.UUID          `json:"productId"`
	SimilarityScore    decimal.Decimal    `json:"similarityScore"`
	RecommendationType RecommendationType `json:"recommendationType"`
	CreatedAt          time.Time          `json:"createdAt"`

	Product *Product `json:"product,omitempty"` // Joined with its farmer.
}
