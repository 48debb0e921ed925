package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel mirrors the 'products' table. Version backs optimistic locking of stock updates.
type ProductModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	FarmerID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID        *string         `gorm:"type:varchar(64);index"`
	Name              string          `gorm:"type:varchar(200);not null"`
	NameKinyarwanda   string          `gorm:"type:varchar(200)"`
	Description       string          `gorm:"type:text"`
	Unit              string          `gorm:"type:varchar(32);not null"`
	PricePerUnit      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	AvailableQuantity int             `gorm:"not null;check:available_quantity >= 0"`
	MinOrderQuantity  int             `gorm:"not null;check:min_order_quantity >= 1"`
	IsAvailable       bool            `gorm:"not null;index"`
	ImageURL          string          `gorm:"type:text"`
	Version           int             `gorm:"not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Farmer *FarmerModel `gorm:"foreignKey:FarmerID"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// CategoryModel mirrors the 'product_categories' table.
type CategoryModel struct {
	ID              string `gorm:"type:varchar(64);primaryKey"`
	Name            string `gorm:"type:varchar(100);not null"`
	NameKinyarwanda string `gorm:"type:varchar(100)"`
	Description     string `gorm:"type:text"`
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "product_categories"
}
