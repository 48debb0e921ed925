package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	// MinRating is the lowest score a review can give.
	MinRating = 1
	// MaxRating is the highest score a review can give.
	MaxRating = 5
)

// Review is a customer's immutable rating of a farmer, optionally tied to an order.
type Review struct {
	ID         uuid.UUID  `json:"id"`
	CustomerID uuid.UUID  `json:"customerId"`
	FarmerID   uuid.UUID  `json:"farmerId"`
	OrderID    *uuid.UUID `json:"orderId"`
	Rating     int        `json:"rating"`
	Comment    string     `json:"comment"`
	CreatedAt  time.Time  `json:"createdAt"`

	Customer *User `json:"customer,omitempty"`
}
