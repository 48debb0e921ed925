package impl

import (
	"context"
	"testing"

	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/domain/service"
	"agriconnect/internal/mocks"
	"agriconnect/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOrderService(env *testEnv, txManager repository.TransactionManager, publisher service.EventPublisher) usecase.OrderUsecase {
	return NewOrderService(OrderServiceParams{
		TxManager:  txManager,
		OrderRepo:  env.repos.NewOrderRepository(),
		FarmerRepo: env.repos.NewFarmerRepository(),
		Publisher:  publisher,
		Config:     newTestConfig(),
		Logger:     newDiscardLogger(),
	})
}

func quietPublisher() *mocks.EventPublisher {
	publisher := &mocks.EventPublisher{}
	publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(nil)

	return publisher
}

func customerActor(u *entity.User) usecase.Actor {
	return usecase.Actor{UserID: u.ID, Role: entity.RoleCustomer}
}

func mustStock(t *testing.T, env *testEnv, id uuid.UUID) int {
	t.Helper()

	product, err := env.repos.NewProductRepository().FindByID(context.Background(), id)
	require.NoError(t, err)

	return product.AvailableQuantity
}

// conflictingTxManager makes the first product writes of each transaction lose the version race.
type conflictingTxManager struct {
	inner     repository.TransactionManager
	conflicts int
	attempts  int
}

func (tm *conflictingTxManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	tm.attempts++

	return tm.inner.Execute(ctx, func(repos repository.RepositoryFactory) error {
		return fn(conflictingFactory{RepositoryFactory: repos, tm: tm})
	})
}

type conflictingFactory struct {
	repository.RepositoryFactory

	tm *conflictingTxManager
}

func (f conflictingFactory) NewProductRepository() repository.ProductRepository {
	return conflictingProducts{ProductRepository: f.RepositoryFactory.NewProductRepository(), tm: f.tm}
}

type conflictingProducts struct {
	repository.ProductRepository

	tm *conflictingTxManager
}

func (p conflictingProducts) Update(ctx context.Context, product *entity.Product) error {
	if p.tm.conflicts > 0 {
		p.tm.conflicts--

		return repository.ErrVersionConflict
	}

	return p.ProductRepository.Update(ctx, product)
}

func TestOrderService_CreateOrder(t *testing.T) {
	env := newTestEnv(t)
	farmer := env.farmer(t, "farmer@example.com", "kigali", "gasabo")
	customer := env.user(t, "customer@example.com", entity.RoleCustomer)
	eggs := env.product(t, farmer, "eggs", "4500", 10)
	broilers := env.product(t, farmer, "poultry", "3000.50", 5)

	publisher := &mocks.EventPublisher{}
	publisher.On("PublishOrderEvent", mock.Anything, mock.MatchedBy(func(e *service.OrderEvent) bool {
		return e.Type == service.OrderEventCreated && e.Status == "pending" && e.TotalAmount == "15001"
	})).Return(nil).Once()
	srv := newOrderService(env, env.txManager, publisher)

	order, err := srv.CreateOrder(context.Background(), customerActor(customer), usecase.CreateOrderInput{
		Items: []usecase.OrderItemInput{
			{ProductID: eggs.ID, Quantity: 2},
			{ProductID: broilers.ID, Quantity: 2, UnitPrice: decPtr("3000.5")},
		},
		TotalAmount:     decPtr("15001"),
		DeliveryAddress: "KG 11 Ave",
	})
	require.NoError(t, err)
	assert.Equal(t, farmer.ID, order.FarmerID)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.True(t, decimal.RequireFromString("15001").Equal(order.TotalAmount))
	require.Len(t, order.Items, 2)
	assert.True(t, decimal.RequireFromString("9000").Equal(order.Items[0].TotalPrice))
	assert.Equal(t, order.ID, order.Items[1].OrderID)

	assert.Equal(t, 8, mustStock(t, env, eggs.ID))
	assert.Equal(t, 3, mustStock(t, env, broilers.ID))
	publisher.AssertExpectations(t)
}

func TestOrderService_CreateOrderToleratesPublishFailure(t *testing.T) {
	env := newTestEnv(t)
	farmer := env.farmer(t, "farmer@example.com", "kigali", "gasabo")
	customer := env.user(t, "customer@example.com", entity.RoleCustomer)
	eggs := env.product(t, farmer, "eggs", "4500", 10)

	publisher := &mocks.EventPublisher{}
	publisher.On("PublishOrderEvent", mock.Anything, mock.Anything).Return(errors.New("broker down"))
	srv := newOrderService(env, env.txManager, publisher)

	order, err := srv.CreateOrder(context.Background(), customerActor(customer), usecase.CreateOrderInput{
		Items: []usecase.OrderItemInput{{ProductID: eggs.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	orders, err := srv.CustomerOrders(context.Background(), customer.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
	publisher.AssertNumberOfCalls(t, "PublishOrderEvent", 1)
}

func TestOrderService_CreateOrderRejections(t *testing.T) {
	env := newTestEnv(t)
	farmer := env.farmer(t, "farmer@example.com", "kigali", "gasabo")
	otherFarmer := env.farmer(t, "other@example.com", "kigali", "gasabo")
	customer := env.user(t, "customer@example.com", entity.RoleCustomer)
	eggs := env.product(t, farmer, "eggs", "4500", 10)
	soldOut := env.product(t, farmer, "poultry", "3000", 0)
	elsewhere := env.product(t, otherFarmer, "eggs", "4000", 10)

	srv := newOrderService(env, env.txManager, quietPublisher())

	tests := []struct {
		name  string
		actor usecase.Actor
		input usecase.CreateOrderInput
		want  error
	}{
		{
			name:  "no items",
			actor: customerActor(customer),
			input: usecase.CreateOrderInput{},
			want:  domainerrors.ErrValidationFailed,
		},
		{
			name:  "zero quantity",
			actor: customerActor(customer),
			input: usecase.CreateOrderInput{Items: []usecase.OrderItemInput{{ProductID: eggs.ID}}},
			want:  domainerrors.ErrValidationFailed,
		},
		{
			name:  "duplicate line",
			actor: customerActor(customer),
			input: usecase.CreateOrderInput{Items: []usecase.OrderItemInput{
				{ProductID: eggs.ID, Quantity: 1},
				{ProductID: eggs.ID, Quantity: 2},
			}},
			want: domainerrors.ErrValidationFailed,
		},
		{
			name:  "more than in stock",
			actor: customerActor(customer),
			input: usecase.CreateOrderInput{Items: []usecase.OrderItemInput{{ProductID: eggs.ID, Quantity: 11}}},
			want:  domainerrors.ErrValidationFailed,
		},
		{
			name:  "sold out",
			actor: customerActor(customer),
			input: usecase.CreateOrderInput{Items: []usecase.OrderItemInput{{ProductID: soldOut.ID, Quantity: 1}}},
			want:  domainerrors.ErrValidationFailed,
		},
		{
			name:  "mixed farmers",
			actor: customerActor(customer),
			input: usecase.CreateOrderInput{Items: []usecase.OrderItemInput{
				{ProductID: eggs.ID, Quantity: 1},
				{ProductID: elsewhere.ID, Quantity: 1},
			}},
			want: domainerrors.ErrValidationFailed,
		},
		{
			name:  "stale price",
			actor: customerActor(customer),
			input: usecase.CreateOrderInput{Items: []usecase.OrderItemInput{{ProductID: eggs.ID, Quantity: 1, UnitPrice: decPtr("4000")}}},
			want:  domainerrors.ErrValidationFailed,
		},
		{
			name:  "wrong total",
			actor: customerActor(customer),
			input: usecase.CreateOrderInput{
				Items:       []usecase.OrderItemInput{{ProductID: eggs.ID, Quantity: 2}},
				TotalAmount: decPtr("8000"),
			},
			want: domainerrors.ErrValidationFailed,
		},
		{
			name:  "own farm",
			actor: farmerActor(farmer),
			input: usecase.CreateOrderInput{Items: []usecase.OrderItemInput{{ProductID: eggs.ID, Quantity: 1}}},
			want:  domainerrors.ErrValidationFailed,
		},
		{
			name:  "unknown product",
			actor: customerActor(customer),
			input: usecase.CreateOrderInput{Items: []usecase.OrderItemInput{{ProductID: uuid.New(), Quantity: 1}}},
			want:  domainerrors.ErrProductNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := srv.CreateOrder(context.Background(), tt.actor, tt.input)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	assert.Equal(t, 10, mustStock(t, env, eggs.ID))
	assert.Equal(t, 10, mustStock(t, env, elsewhere.ID))
	orders, err := srv.CustomerOrders(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_CreateOrderRetriesStockConflicts(t *testing.T) {
	env := newTestEnv(t)
	farmer := env.farmer(t, "farmer@example.com", "kigali", "gasabo")
	customer := env.user(t, "customer@example.com", entity.RoleCustomer)
	eggs := env.product(t, farmer, "eggs", "4500", 10)
	input := usecase.CreateOrderInput{Items: []usecase.OrderItemInput{{ProductID: eggs.ID, Quantity: 3}}}

	t.Run("succeeds within the retry budget", func(t *testing.T) {
		tm := &conflictingTxManager{inner: env.txManager, conflicts: 2}
		srv := newOrderService(env, tm, quietPublisher())

		_, err := srv.CreateOrder(context.Background(), customerActor(customer), input)
		require.NoError(t, err)
		assert.Equal(t, 3, tm.attempts)
		assert.Equal(t, 7, mustStock(t, env, eggs.ID))
	})

	t.Run("gives up with a conflict", func(t *testing.T) {
		tm := &conflictingTxManager{inner: env.txManager, conflicts: 100}
		publisher := &mocks.EventPublisher{}
		srv := newOrderService(env, tm, publisher)

		_, err := srv.CreateOrder(context.Background(), customerActor(customer), input)
		assert.ErrorIs(t, err, domainerrors.ErrConflict)
		assert.Equal(t, 4, tm.attempts)
		assert.Equal(t, 7, mustStock(t, env, eggs.ID))
		publisher.AssertNotCalled(t, "PublishOrderEvent", mock.Anything, mock.Anything)
	})
}

func TestOrderService_UpdateStatus(t *testing.T) {
	env := newTestEnv(t)
	farmer := env.farmer(t, "farmer@example.com", "kigali", "gasabo")
	otherFarmer := env.farmer(t, "other@example.com", "kigali", "gasabo")
	customer := env.user(t, "customer@example.com", entity.RoleCustomer)
	admin := env.user(t, "admin@example.com", entity.RoleAdmin)
	eggs := env.product(t, farmer, "eggs", "4500", 10)
	ctx := context.Background()

	publisher := quietPublisher()
	srv := newOrderService(env, env.txManager, publisher)

	place := func(t *testing.T) *entity.Order {
		t.Helper()
		order, err := srv.CreateOrder(ctx, customerActor(customer), usecase.CreateOrderInput{
			Items: []usecase.OrderItemInput{{ProductID: eggs.ID, Quantity: 1}},
		})
		require.NoError(t, err)

		return order
	}
	storedStatus := func(t *testing.T, id uuid.UUID) entity.OrderStatus {
		t.Helper()
		order, err := env.repos.NewOrderRepository().FindByID(ctx, id)
		require.NoError(t, err)

		return order.Status
	}

	t.Run("farmer walks the lifecycle", func(t *testing.T) {
		order := place(t)

		confirmed, err := srv.UpdateStatus(ctx, farmerActor(farmer), order.ID, entity.OrderStatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, entity.OrderStatusConfirmed, confirmed.Status)

		_, err = srv.UpdateStatus(ctx, farmerActor(farmer), order.ID, entity.OrderStatusDelivered)
		require.NoError(t, err)

		_, err = srv.UpdateStatus(ctx, farmerActor(farmer), order.ID, entity.OrderStatusCancelled)
		var transition *domainerrors.InvalidTransitionError
		require.ErrorAs(t, err, &transition)
		assert.Equal(t, "delivered", transition.From)
		assert.Equal(t, entity.OrderStatusDelivered, storedStatus(t, order.ID))
	})

	t.Run("customer may only cancel", func(t *testing.T) {
		order := place(t)

		_, err := srv.UpdateStatus(ctx, customerActor(customer), order.ID, entity.OrderStatusConfirmed)
		assert.ErrorIs(t, err, domainerrors.ErrForbidden)

		cancelled, err := srv.UpdateStatus(ctx, customerActor(customer), order.ID, entity.OrderStatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, entity.OrderStatusCancelled, cancelled.Status)

		_, err = srv.UpdateStatus(ctx, customerActor(customer), order.ID, entity.OrderStatusCancelled)
		var transition *domainerrors.InvalidTransitionError
		assert.ErrorAs(t, err, &transition)
	})

	t.Run("other farmers are rejected", func(t *testing.T) {
		order := place(t)

		_, err := srv.UpdateStatus(ctx, farmerActor(otherFarmer), order.ID, entity.OrderStatusConfirmed)
		assert.ErrorIs(t, err, domainerrors.ErrForbidden)
		assert.Equal(t, entity.OrderStatusPending, storedStatus(t, order.ID))
	})

	t.Run("admin follows the state machine", func(t *testing.T) {
		order := place(t)
		actor := usecase.Actor{UserID: admin.ID, Role: entity.RoleAdmin}

		_, err := srv.UpdateStatus(ctx, actor, order.ID, entity.OrderStatusDelivered)
		var transition *domainerrors.InvalidTransitionError
		require.ErrorAs(t, err, &transition)

		_, err = srv.UpdateStatus(ctx, actor, order.ID, entity.OrderStatusConfirmed)
		require.NoError(t, err)
	})

	t.Run("unknown status and order", func(t *testing.T) {
		order := place(t)

		_, err := srv.UpdateStatus(ctx, farmerActor(farmer), order.ID, entity.OrderStatus("shipped"))
		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

		_, err = srv.UpdateStatus(ctx, farmerActor(farmer), uuid.New(), entity.OrderStatusConfirmed)
		assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
	})

	publisher.AssertCalled(t, "PublishOrderEvent", mock.Anything, mock.MatchedBy(func(e *service.OrderEvent) bool {
		return e.Type == service.OrderEventStatusChanged && e.PreviousStatus == "pending" && e.Status == "confirmed"
	}))
}

func TestOrderService_ListOrders(t *testing.T) {
	env := newTestEnv(t)
	farmer := env.farmer(t, "farmer@example.com", "kigali", "gasabo")
	customer := env.user(t, "customer@example.com", entity.RoleCustomer)
	eggs := env.product(t, farmer, "eggs", "4500", 10)
	ctx := context.Background()
	srv := newOrderService(env, env.txManager, quietPublisher())

	var placed []uuid.UUID
	for range 3 {
		order, err := srv.CreateOrder(ctx, customerActor(customer), usecase.CreateOrderInput{
			Items: []usecase.OrderItemInput{{ProductID: eggs.ID, Quantity: 1}},
		})
		require.NoError(t, err)
		placed = append(placed, order.ID)
	}

	mine, err := srv.CustomerOrders(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, mine, 3)
	assert.Equal(t, placed[2], mine[0].ID)
	assert.Equal(t, placed[0], mine[2].ID)

	incoming, err := srv.FarmerOrders(ctx, farmer.UserID)
	require.NoError(t, err)
	require.Len(t, incoming, 3)
	assert.Equal(t, placed[2], incoming[0].ID)

	_, err = srv.FarmerOrders(ctx, customer.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}
