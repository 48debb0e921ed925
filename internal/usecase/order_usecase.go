package usecase

import (
	"context"

	"agriconnect/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItemInput is one requested order line. UnitPrice is advisory: when set it must
// equal the live product price.
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice *decimal.Decimal
}

// CreateOrderInput represents an order request. FarmerID may be left nil, in which case it
// is taken from the products. TotalAmount is advisory like OrderItemInput.UnitPrice.
type CreateOrderInput struct {
	FarmerID        uuid.UUID
	Items           []OrderItemInput
	TotalAmount     *decimal.Decimal
	DeliveryAddress string
	DeliveryPhone   string
	Notes           string
}

// OrderUsecase defines order placement and the order status workflow
type OrderUsecase interface {
	CreateOrder(ctx context.Context, actor Actor, input CreateOrderInput) (*entity.Order, error)
	CustomerOrders(ctx context.Context, customerID uuid.UUID) ([]*entity.Order, error)
	// FarmerOrders lists the orders received by the farmer profile of userID.
	FarmerOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, actor Actor, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error)
}
