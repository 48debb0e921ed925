package impl

import (
	"context"
	"testing"

	"agriconnect/internal/domain/entity"
	"agriconnect/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminService(env *testEnv) usecase.AdminUsecase {
	return NewAdminService(AdminServiceParams{
		UserRepo:     env.repos.NewUserRepository(),
		FarmerRepo:   env.repos.NewFarmerRepository(),
		ProductRepo:  env.repos.NewProductRepository(),
		OrderRepo:    env.repos.NewOrderRepository(),
		LocationRepo: env.repos.NewLocationRepository(),
	})
}

func TestAdminService_Statistics(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	kigali := env.farmer(t, "kigali@example.com", "kigali", "gasabo")
	kigaliTwo := env.farmer(t, "kigali2@example.com", "kigali", "gasabo")
	northern := env.farmer(t, "northern@example.com", "northern", "musanze")
	customer := env.user(t, "customer@example.com", entity.RoleCustomer)
	env.user(t, "admin@example.com", entity.RoleAdmin)

	eggs := env.product(t, kigali, "eggs", "4500", 10)
	broilers := env.product(t, northern, "poultry", "3000", 10)
	env.product(t, kigaliTwo, "eggs", "4000", 0)

	orders := newOrderService(env, env.txManager, quietPublisher())
	place := func(product *entity.Product, quantity int) *entity.Order {
		order, err := orders.CreateOrder(ctx, customerActor(customer), usecase.CreateOrderInput{
			Items: []usecase.OrderItemInput{{ProductID: product.ID, Quantity: quantity}},
		})
		require.NoError(t, err)

		return order
	}
	farmerOf := map[*entity.Product]*entity.Farmer{eggs: kigali, broilers: northern}
	deliver := func(product *entity.Product, quantity int) {
		order := place(product, quantity)
		actor := farmerActor(farmerOf[product])
		_, err := orders.UpdateStatus(ctx, actor, order.ID, entity.OrderStatusConfirmed)
		require.NoError(t, err)
		_, err = orders.UpdateStatus(ctx, actor, order.ID, entity.OrderStatusDelivered)
		require.NoError(t, err)
	}

	deliver(eggs, 2)
	deliver(broilers, 1)
	place(broilers, 1)

	stats, err := newAdminService(env).Statistics(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalFarmers)
	assert.Equal(t, 3, stats.ActiveFarmers)
	assert.Equal(t, 1, stats.TotalCustomers)
	assert.Equal(t, 3, stats.TotalProducts)
	assert.Equal(t, 2, stats.AvailableProducts)
	assert.Equal(t, 3, stats.TotalOrders)
	assert.Equal(t, map[entity.OrderStatus]int{
		entity.OrderStatusPending:   1,
		entity.OrderStatusConfirmed: 0,
		entity.OrderStatusDelivered: 2,
		entity.OrderStatusCancelled: 0,
	}, stats.OrdersByStatus)
	assert.True(t, decimal.RequireFromString("12000").Equal(stats.TotalRevenue), stats.TotalRevenue.String())
	assert.True(t, decimal.RequireFromString("6000").Equal(stats.AvgOrderValue), stats.AvgOrderValue.String())

	require.Len(t, stats.TopProvinces, 2)
	assert.Equal(t, usecase.ProvinceActivity{ProvinceID: "kigali", Name: "Kigali City", Farmers: 2, Orders: 1}, stats.TopProvinces[0])
	assert.Equal(t, usecase.ProvinceActivity{ProvinceID: "northern", Name: "Northern Province", Farmers: 1, Orders: 2}, stats.TopProvinces[1])
}

func TestAdminService_StatisticsOnEmptyStore(t *testing.T) {
	env := newTestEnv(t)

	stats, err := newAdminService(env).Statistics(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalOrders)
	assert.True(t, stats.TotalRevenue.IsZero())
	assert.True(t, stats.AvgOrderValue.IsZero())
	assert.Len(t, stats.OrdersByStatus, 4)
	assert.Empty(t, stats.TopProvinces)
}

func TestAdminService_Listings(t *testing.T) {
	env := newTestEnv(t)
	farmer := env.farmer(t, "farmer@example.com", "kigali", "gasabo")
	env.product(t, farmer, "eggs", "4500", 0)
	env.product(t, farmer, "eggs", "4000", 3)
	srv := newAdminService(env)

	products, err := srv.Products(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)

	orders, err := srv.Orders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}
