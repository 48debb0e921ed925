package postgres

import (
	"context"
	"time"

	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a GORM-backed order repository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts the order header and its items in one statement batch.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	for _, item := range order.Items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.OrderID = order.ID
	}
	orderM := fromOrderDomain(order)

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(orderM).Error; err != nil {
			return err
		}
		if len(orderM.Items) == 0 {
			return nil
		}

		return tx.Create(&orderM.Items).Error
	})
	if err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewValidationError("order references an unknown customer, farmer or product")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel
	if err := repo.db.WithContext(ctx).Preload("Items").First(&orderM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

func (repo *orderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.Order, error) {
	query := repo.db.WithContext(ctx).Preload("Farmer.User").Where("customer_id = ?", customerID)

	return repo.list(query)
}

func (repo *orderRepository) FindByFarmer(ctx context.Context, farmerID uuid.UUID) ([]*entity.Order, error) {
	query := repo.db.WithContext(ctx).Preload("Customer").Where("farmer_id = ?", farmerID)

	return repo.list(query)
}

func (repo *orderRepository) FindAll(ctx context.Context) ([]*entity.Order, error) {
	return repo.list(repo.db.WithContext(ctx).Preload("Customer").Preload("Farmer.User"))
}

func (repo *orderRepository) list(query *gorm.DB) ([]*entity.Order, error) {
	var orderMs []model.OrderModel
	if err := query.Preload("Items").Order("created_at DESC, id DESC").Find(&orderMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	orders := make([]*entity.Order, 0, len(orderMs))
	for i := range orderMs {
		orders = append(orders, toOrderDomain(&orderMs[i]))
	}

	return orders, nil
}

// UpdateStatus moves the order from one status to another only if it is still in from.
func (repo *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus) error {
	result := repo.db.WithContext(ctx).Model(&model.OrderModel{}).
		Where("id = ? AND status = ?", id, from.String()).
		Updates(map[string]any{
			"status":     to.String(),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order status")
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.OrderModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to check order existence")
	}
	if count == 0 {
		return repository.ErrOrderNotFound
	}

	return repository.ErrVersionConflict
}

// --- Mapper Functions ---

func toOrderDomain(data *model.OrderModel) *entity.Order {
	order := &entity.Order{
		ID:              data.ID,
		CustomerID:      data.CustomerID,
		FarmerID:        data.FarmerID,
		TotalAmount:     data.TotalAmount,
		Status:          entity.OrderStatus(data.Status),
		DeliveryAddress: data.DeliveryAddress,
		DeliveryPhone:   data.DeliveryPhone,
		Notes:           data.Notes,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
		Items:           make([]*entity.OrderItem, 0, len(data.Items)),
		Customer:        toUserDomain(data.Customer),
		Farmer:          toFarmerDomain(data.Farmer),
	}
	for _, item := range data.Items {
		order.Items = append(order.Items, &entity.OrderItem{
			ID:         item.ID,
			OrderID:    item.OrderID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		})
	}

	return order
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	orderM := &model.OrderModel{
		ID:              data.ID,
		CustomerID:      data.CustomerID,
		FarmerID:        data.FarmerID,
		TotalAmount:     data.TotalAmount,
		Status:          data.Status.String(),
		DeliveryAddress: data.DeliveryAddress,
		DeliveryPhone:   data.DeliveryPhone,
		Notes:           data.Notes,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
		Items:           make([]model.OrderItemModel, 0, len(data.Items)),
	}
	for _, item := range data.Items {
		orderM.Items = append(orderM.Items, model.OrderItemModel{
			ID:         item.ID,
			OrderID:    data.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		})
	}

	return orderM
}
