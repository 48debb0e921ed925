package memory

import (
	"context"
	"slices"

	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/repository"

	"github.com/google/uuid"
)

type orderRepository struct {
	acc access
}

// NewOrderRepository creates an order repository backed by the store.
func NewOrderRepository(store *Store) repository.OrderRepository {
	return &orderRepository{acc: store}
}

func (repo *orderRepository) Create(_ context.Context, order *entity.Order) error {
	return repo.acc.write(func(t *tables) error {
		if order.ID == uuid.Nil {
			order.ID = uuid.New()
		}

		now := repo.acc.now()
		order.CreatedAt, order.UpdatedAt = now, now

		items := make([]entity.OrderItem, 0, len(order.Items))
		for _, item := range order.Items {
			if item.ID == uuid.Nil {
				item.ID = uuid.New()
			}
			item.OrderID = order.ID
			items = append(items, *item)
		}

		stored := *order
		stored.Items, stored.Customer, stored.Farmer = nil, nil, nil
		t.orders[order.ID] = stored
		t.orderItems[order.ID] = items
		t.orderOrder = append(t.orderOrder, order.ID)

		return nil
	})
}

func (repo *orderRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	var found *entity.Order
	err := repo.acc.read(func(t *tables) error {
		o, ok := t.orders[id]
		if !ok {
			return repository.ErrOrderNotFound
		}
		found = t.orderView(o)

		return nil
	})

	return found, err
}

func (repo *orderRepository) FindByCustomer(_ context.Context, customerID uuid.UUID) ([]*entity.Order, error) {
	return repo.list(func(o *entity.Order) bool { return o.CustomerID == customerID }, false, true)
}

func (repo *orderRepository) FindByFarmer(_ context.Context, farmerID uuid.UUID) ([]*entity.Order, error) {
	return repo.list(func(o *entity.Order) bool { return o.FarmerID == farmerID }, true, false)
}

func (repo *orderRepository) FindAll(_ context.Context) ([]*entity.Order, error) {
	return repo.list(func(*entity.Order) bool { return true }, true, true)
}

// list walks orders newest first. Orders created within the same clock tick keep
// reverse insertion order.
func (repo *orderRepository) list(keep func(o *entity.Order) bool, withCustomer, withFarmer bool) ([]*entity.Order, error) {
	var orders []*entity.Order
	err := repo.acc.read(func(t *tables) error {
		for _, id := range slices.Backward(t.orderOrder) {
			o := t.orders[id]
			if !keep(&o) {
				continue
			}

			view := t.orderView(o)
			if withCustomer {
				view.Customer = t.userView(o.CustomerID)
			}
			if f, ok := t.farmers[o.FarmerID]; ok && withFarmer {
				view.Farmer = t.farmerView(f)
			}
			orders = append(orders, view)
		}

		return nil
	})
	slices.SortStableFunc(orders, func(a, b *entity.Order) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return orders, err
}

func (repo *orderRepository) UpdateStatus(_ context.Context, id uuid.UUID, from, to entity.OrderStatus) error {
	return repo.acc.write(func(t *tables) error {
		o, ok := t.orders[id]
		if !ok {
			return repository.ErrOrderNotFound
		}
		if o.Status != from {
			return repository.ErrVersionConflict
		}

		o.Status = to
		o.UpdatedAt = repo.acc.now()
		t.orders[id] = o

		return nil
	})
}
