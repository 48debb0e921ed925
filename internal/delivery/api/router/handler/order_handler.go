package handler

import (
	"agriconnect/internal/delivery/api/response"
	"agriconnect/internal/domain/entity"
	"agriconnect/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// OrderHandler serves order placement and the status workflow
type OrderHandler struct {
	orderUC usecase.OrderUsecase
}

// NewOrderHandler is the constructor for OrderHandler
func NewOrderHandler(orderUC usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{orderUC: orderUC}
}

// OrderItemRequest is one line of an order request
type OrderItemRequest struct {
	ProductID uuid.UUID        `json:"productId" validate:"required"`
	Quantity  int              `json:"quantity" validate:"gte=1"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
}

// CreateOrderRequest represents the request body for placing an order
type CreateOrderRequest struct {
	FarmerID        uuid.UUID          `json:"farmerId"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	TotalAmount     *decimal.Decimal   `json:"totalAmount"`
	DeliveryAddress string             `json:"deliveryAddress" validate:"required"`
	DeliveryPhone   string             `json:"deliveryPhone"`
	Notes           string             `json:"notes"`
}

// UpdateOrderStatusRequest represents a status change
type UpdateOrderStatusRequest struct {
	Status entity.OrderStatus `json:"status" validate:"required"`
}

// CreateOrder handles POST /api/orders
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}

	var req CreateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	items := make([]usecase.OrderItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, usecase.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	order, err := h.orderUC.CreateOrder(c.Request().Context(), caller, usecase.CreateOrderInput{
		FarmerID:        req.FarmerID,
		Items:           items,
		TotalAmount:     req.TotalAmount,
		DeliveryAddress: req.DeliveryAddress,
		DeliveryPhone:   req.DeliveryPhone,
		Notes:           req.Notes,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, order)
}

// CustomerOrders handles GET /api/orders/customer
func (h *OrderHandler) CustomerOrders(c echo.Context) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}

	orders, err := h.orderUC.CustomerOrders(c.Request().Context(), caller.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, list(orders))
}

// FarmerOrders handles GET /api/orders/farmer
func (h *OrderHandler) FarmerOrders(c echo.Context) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}

	orders, err := h.orderUC.FarmerOrders(c.Request().Context(), caller.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, list(orders))
}

// UpdateStatus handles PATCH /api/orders/:id/status
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateOrderStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.orderUC.UpdateStatus(c.Request().Context(), caller, id, req.Status)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, order)
}
