package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. Email is nullable so accounts without one do not collide on the unique index.
type UserModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email           *string   `gorm:"type:varchar(255);uniqueIndex"`
	FirstName       string    `gorm:"type:varchar(100)"`
	LastName        string    `gorm:"type:varchar(100)"`
	Role            string    `gorm:"type:varchar(20);not null;index"`
	PasswordHash    string    `gorm:"type:varchar(255)"`
	ProfileImageURL string    `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
