package impl

import (
	"context"
	"log/slog"
	"time"

	"agriconnect/config"
	deliverycontext "agriconnect/internal/delivery/context"
	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/domain/service"
	"agriconnect/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager       repository.TransactionManager
	orderRepo       repository.OrderRepository
	farmerRepo      repository.FarmerRepository
	publisher       service.EventPublisher
	maxStockRetries int
	now             func() time.Time
	logger          *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	OrderRepo  repository.OrderRepository
	FarmerRepo repository.FarmerRepository
	Publisher  service.EventPublisher
	Config     *config.Config
	Logger     *slog.Logger
}

// NewOrderService creates a new order service instance
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	maxStockRetries := 0
	if params.Config != nil && params.Config.Order != nil {
		maxStockRetries = params.Config.Order.MaxStockRetries
	}

	return &orderService{
		txManager:       params.TxManager,
		orderRepo:       params.OrderRepo,
		farmerRepo:      params.FarmerRepo,
		publisher:       params.Publisher,
		maxStockRetries: maxStockRetries,
		now:             time.Now,
		logger:          params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateOrder places an order and decrements stock in one transaction. Prices are taken from
// the live products. A lost stock race is retried with fresh reads before it surfaces as a conflict.
func (srv *orderService) CreateOrder(ctx context.Context, actor usecase.Actor, input usecase.CreateOrderInput) (*entity.Order, error) {
	if err := validateOrderItems(input.Items); err != nil {
		return nil, err
	}

	var order *entity.Order
	var err error
	for attempt := 0; ; attempt++ {
		order, err = srv.placeOrder(ctx, actor, input)
		if !errors.Is(err, repository.ErrVersionConflict) {
			break
		}
		if attempt >= srv.maxStockRetries {
			srv.log(ctx).Warn("Giving up on order after stock conflicts", slog.Int("attempts", attempt+1))

			return nil, domainerrors.ErrConflict.WithDetails("product stock changed while placing the order")
		}
		srv.log(ctx).Debug("Retrying order after stock conflict", slog.Int("attempt", attempt+1))
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create order")
	}

	srv.log(ctx).Info("Order created",
		slog.Any("orderID", order.ID),
		slog.Any("farmerID", order.FarmerID),
		slog.String("total", order.TotalAmount.String()),
	)
	srv.publish(ctx, srv.orderEvent(service.OrderEventCreated, order, ""))

	return order, nil
}

func validateOrderItems(items []usecase.OrderItemInput) error {
	if len(items) == 0 {
		return domainerrors.NewValidationError("order must contain at least one item")
	}

	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		if item.ProductID == uuid.Nil {
			return domainerrors.NewValidationError("every item needs a product id")
		}
		if item.Quantity < 1 {
			return domainerrors.NewValidationError("quantity for product %s must be at least 1", item.ProductID)
		}
		if _, dup := seen[item.ProductID]; dup {
			return domainerrors.NewValidationError("product %s appears more than once", item.ProductID)
		}
		seen[item.ProductID] = struct{}{}
	}

	return nil
}

func (srv *orderService) placeOrder(ctx context.Context, actor usecase.Actor, input usecase.CreateOrderInput) (*entity.Order, error) {
	var placed *entity.Order
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.NewProductRepository()

		farmerID := input.FarmerID
		items := make([]*entity.OrderItem, 0, len(input.Items))
		products := make([]*entity.Product, 0, len(input.Items))
		for _, line := range input.Items {
			product, err := findProduct(ctx, productRepo, line.ProductID)
			if err != nil {
				return err
			}
			if farmerID == uuid.Nil {
				farmerID = product.FarmerID
			}
			if err := checkOrderLine(product, farmerID, line); err != nil {
				return err
			}

			items = append(items, entity.NewOrderItem(product.ID, line.Quantity, product.PricePerUnit))
			product.AvailableQuantity -= line.Quantity
			products = append(products, product)
		}

		farmer, err := findFarmer(ctx, repoFactory.NewFarmerRepository(), farmerID)
		if err != nil {
			return err
		}
		if !farmer.IsActive {
			return domainerrors.NewValidationError("farmer %s is not accepting orders", farmer.ID)
		}
		if farmer.UserID == actor.UserID {
			return domainerrors.NewValidationError("farmers cannot order from their own farm")
		}

		order := &entity.Order{
			ID:              uuid.New(),
			CustomerID:      actor.UserID,
			FarmerID:        farmer.ID,
			Status:          entity.OrderStatusPending,
			DeliveryAddress: input.DeliveryAddress,
			DeliveryPhone:   input.DeliveryPhone,
			Notes:           input.Notes,
		}
		order.AttachItems(items)
		if input.TotalAmount != nil && !input.TotalAmount.Equal(order.TotalAmount) {
			return domainerrors.NewValidationError("total amount %s does not match the items total %s", input.TotalAmount, order.TotalAmount)
		}

		for _, product := range products {
			if err := productRepo.Update(ctx, product); err != nil {
				return errors.Wrapf(err, "failed to reserve stock of product %s", product.ID)
			}
		}
		if err := repoFactory.NewOrderRepository().Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to store order")
		}

		order.Farmer = farmer
		placed = order

		return nil
	})

	return placed, err
}

// checkOrderLine verifies that a requested line can be served from the product.
func checkOrderLine(product *entity.Product, farmerID uuid.UUID, line usecase.OrderItemInput) error {
	switch {
	case product.FarmerID != farmerID:
		return domainerrors.NewValidationError("product %q is not sold by farmer %s", product.Name, farmerID)
	case !product.IsOrderable():
		return domainerrors.NewValidationError("product %q is not available", product.Name)
	case line.Quantity < product.MinOrderQuantity:
		return domainerrors.NewValidationError("product %q has a minimum order of %d %s", product.Name, product.MinOrderQuantity, product.Unit)
	case line.Quantity > product.AvailableQuantity:
		return domainerrors.NewValidationError("only %d %s of %q left", product.AvailableQuantity, product.Unit, product.Name)
	case line.UnitPrice != nil && !line.UnitPrice.Equal(product.PricePerUnit):
		return domainerrors.NewValidationError("unit price of %q is %s, not %s", product.Name, product.PricePerUnit, line.UnitPrice)
	}

	return nil
}

func (srv *orderService) CustomerOrders(ctx context.Context, customerID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customer orders")
	}

	return orders, nil
}

func (srv *orderService) FarmerOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	farmer, err := srv.farmerRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrFarmerNotFound) {
		return nil, domainerrors.NewAuthorizationError("only farmers can view farmer orders")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find farmer profile")
	}

	orders, err := srv.orderRepo.FindByFarmer(ctx, farmer.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list farmer orders")
	}

	return orders, nil
}

// UpdateStatus applies a status change allowed by both the state machine and the caller's role.
// A rejected change leaves the stored order untouched.
func (srv *orderService) UpdateStatus(ctx context.Context, actor usecase.Actor, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	if !status.IsValid() {
		return nil, domainerrors.NewValidationError("unknown order status %q", status)
	}

	var updated *entity.Order
	var previous entity.OrderStatus
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.NewOrderRepository()

		order, err := orderRepo.FindByID(ctx, orderID)
		if errors.Is(err, repository.ErrOrderNotFound) {
			return domainerrors.ErrOrderNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to find order")
		}

		if err := authorizeStatusChange(ctx, repoFactory.NewFarmerRepository(), actor, order, status); err != nil {
			return err
		}
		if !order.Status.CanTransitionTo(status) {
			return domainerrors.NewInvalidTransitionError(order.Status.String(), status.String())
		}

		if err := orderRepo.UpdateStatus(ctx, order.ID, order.Status, status); err != nil {
			if errors.Is(err, repository.ErrVersionConflict) {
				return domainerrors.ErrConflict.WithDetails("order status changed concurrently")
			}

			return errors.Wrap(err, "failed to update order status")
		}

		previous = order.Status
		order.Status = status
		updated = order

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Order status changed",
		slog.Any("orderID", updated.ID),
		slog.String("from", previous.String()),
		slog.String("to", status.String()),
	)
	srv.publish(ctx, srv.orderEvent(service.OrderEventStatusChanged, updated, previous))

	return updated, nil
}

// authorizeStatusChange allows admins any change, the ordering customer a cancellation, and the
// owning farmer every change.
func authorizeStatusChange(ctx context.Context, farmerRepo repository.FarmerRepository, actor usecase.Actor, order *entity.Order, status entity.OrderStatus) error {
	if actor.IsAdmin() {
		return nil
	}
	if order.CustomerID == actor.UserID && status == entity.OrderStatusCancelled {
		return nil
	}

	farmer, err := farmerRepo.FindByUserID(ctx, actor.UserID)
	if err != nil && !errors.Is(err, repository.ErrFarmerNotFound) {
		return errors.Wrap(err, "failed to find farmer profile")
	}
	if farmer != nil && farmer.ID == order.FarmerID {
		return nil
	}

	if order.CustomerID == actor.UserID {
		return domainerrors.NewAuthorizationError("customers can only cancel their orders")
	}

	return domainerrors.NewAuthorizationError("not allowed to change the status of this order")
}

func (srv *orderService) orderEvent(eventType string, order *entity.Order, previous entity.OrderStatus) *service.OrderEvent {
	return &service.OrderEvent{
		Type:           eventType,
		OrderID:        order.ID.String(),
		CustomerID:     order.CustomerID.String(),
		FarmerID:       order.FarmerID.String(),
		Status:         order.Status.String(),
		PreviousStatus: previous.String(),
		TotalAmount:    order.TotalAmount.String(),
		OccurredAt:     srv.now().UTC(),
	}
}

// publish runs after commit. A failed publish is logged and the order stays committed.
func (srv *orderService) publish(ctx context.Context, event *service.OrderEvent) {
	event.RequestID = deliverycontext.GetRequestIDFromContext(ctx)

	if err := srv.publisher.PublishOrderEvent(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to publish order event",
			slog.String("type", event.Type),
			slog.String("orderID", event.OrderID),
			slog.Any("error", err),
		)
	}
}
