package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is a purchase by one customer from one farmer.
// Status is the only field that changes after creation.
type Order struct {
	ID              uuid.UUID       `json:"id"`
	CustomerID      uuid.UUID       `json:"customerId"`
	FarmerID        uuid.UUID       `json:"farmerId"`
	TotalAmount     decimal.Decimal `json:"totalAmount"` // Always the sum of the item totals.
	Status          OrderStatus     `json:"status"`
	DeliveryAddress string          `json:"deliveryAddress"`
	DeliveryPhone   string          `json:"deliveryPhone"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`

	Items    []*OrderItem `json:"items"`
	Customer *User        `json:"customer,omitempty"` // Joined for the farmer's view.
	Farmer   *Farmer      `json:"farmer,omitempty"`   // Joined for the customer's view.
}

// OrderItem is an immutable order line with the unit price captured at order time.
type OrderItem struct {
	ID         uuid.UUID       `json:"id"`
	OrderID    uuid.UUID       `json:"orderId"`
	ProductID  uuid.UUID       `json:"productId"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// NewOrderItem builds a line and computes its total as quantity * unitPrice.
func NewOrderItem(productID uuid.UUID, quantity int, unitPrice decimal.Decimal) *OrderItem {
	return &OrderItem{
		ID:         uuid.New(),
		ProductID:  productID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
		TotalPrice: unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// ItemsTotal sums the line totals.
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.TotalPrice)
	}

	return total
}

// AttachItems links the items to the order and sets TotalAmount from them.
func (o *Order) AttachItems(items []*OrderItem) {
	for _, item := range items {
		item.OrderID = o.ID
	}
	o.Items = items
	o.TotalAmount = o.ItemsTotal()
}
