package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DemandPredictionModel mirrors the 'demand_predictions' table.
type DemandPredictionModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CategoryID      string          `gorm:"column:product_category_id;type:varchar(64);index:idx_demand_pair"`
	ProvinceID      string          `gorm:"type:varchar(64);index:idx_demand_pair"`
	PredictedDemand decimal.Decimal `gorm:"type:decimal(10,2)"`
	ConfidenceScore decimal.Decimal `gorm:"type:decimal(5,4)"`
	Model           string          `gorm:"column:model_name;type:varchar(64)"`
	PredictionDate  time.Time       `gorm:"not null"`
	CreatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (DemandPredictionModel) TableName() string {
	return "demand_predictions"
}

// RecommendationModel mirrors the 'recommendations' table.
type RecommendationModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID          uuid.UUID       `gorm:"type:uuid;not null"`
	SimilarityScore    decimal.Decimal `gorm:"type:decimal(5,4)"`
	RecommendationType string          `gorm:"type:varchar(20)"`
	CreatedAt          time.Time

	Product *ProductModel `gorm:"foreignKey:ProductID"`
}

// TableName explicitly sets the table name for GORM.
func (RecommendationModel) TableName() string {
	return "recommendations"
}

// All lists every model for schema migration, parents before children.
func All() []any {
	return []any{
		&UserModel{},
		&ProvinceModel{},
		&DistrictModel{},
		&SectorModel{},
		&CategoryModel{},
		&FarmerModel{},
		&ProductModel{},
		&OrderModel{},
		&OrderItemModel{},
		&ReviewModel{},
		&DemandPredictionModel{},
		&RecommendationModel{},
	}
}
