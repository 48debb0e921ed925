package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FarmerModel mirrors the 'farmers' table. UserID is unique: one profile per user.
type FarmerModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	FarmName     string          `gorm:"type:varchar(200);not null"`
	Description  string          `gorm:"type:text"`
	ProvinceID   *string         `gorm:"type:varchar(64);index"`
	DistrictID   *string         `gorm:"type:varchar(64);index"`
	SectorID     *string         `gorm:"type:varchar(64);index"`
	Latitude     *float64        `gorm:"type:double precision"`
	Longitude    *float64        `gorm:"type:double precision"`
	Phone        string          `gorm:"type:varchar(32)"`
	Rating       decimal.Decimal `gorm:"type:decimal(3,2);not null"`
	TotalRatings int             `gorm:"not null"`
	RatingSum    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	IsActive     bool            `gorm:"not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	User *UserModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (FarmerModel) TableName() string {
	return "farmers"
}
