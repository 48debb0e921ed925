package impl

import (
	"cmp"
	"context"
	"slices"

	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/usecase"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

const (
	topProvinceCount    = 3
	avgOrderValuePlaces = 2
)

// adminService implements the AdminUsecase interface.
type adminService struct {
	userRepo     repository.UserRepository
	farmerRepo   repository.FarmerRepository
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
	locationRepo repository.LocationRepository
}

// AdminServiceParams holds dependencies for AdminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	FarmerRepo   repository.FarmerRepository
	ProductRepo  repository.ProductRepository
	OrderRepo    repository.OrderRepository
	LocationRepo repository.LocationRepository
}

// NewAdminService creates a new admin service instance
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		userRepo:     params.UserRepo,
		farmerRepo:   params.FarmerRepo,
		productRepo:  params.ProductRepo,
		orderRepo:    params.OrderRepo,
		locationRepo: params.LocationRepo,
	}
}

// Statistics computes the dashboard counters from the stored data.
func (srv *adminService) Statistics(ctx context.Context) (*usecase.Statistics, error) {
	farmers, err := srv.farmerRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list farmers")
	}
	customers, err := srv.userRepo.Search(ctx, entity.UserFilter{Role: entity.RoleCustomer})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customers")
	}
	products, err := srv.productRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}
	orders, err := srv.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}
	provinces, err := srv.locationRepo.ListProvinces(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list provinces")
	}

	stats := &usecase.Statistics{
		TotalFarmers:   len(farmers),
		TotalCustomers: len(customers),
		TotalProducts:  len(products),
		TotalOrders:    len(orders),
		OrdersByStatus: make(map[entity.OrderStatus]int),
		TotalRevenue:   decimal.Zero,
		AvgOrderValue:  decimal.Zero,
	}
	for _, status := range entity.OrderStatuses() {
		stats.OrdersByStatus[status] = 0
	}

	for _, farmer := range farmers {
		if farmer.IsActive {
			stats.ActiveFarmers++
		}
	}
	for _, product := range products {
		if product.IsOrderable() {
			stats.AvailableProducts++
		}
	}

	delivered := 0
	for _, order := range orders {
		stats.OrdersByStatus[order.Status]++
		if order.Status == entity.OrderStatusDelivered {
			stats.TotalRevenue = stats.TotalRevenue.Add(order.TotalAmount)
			delivered++
		}
	}
	if delivered > 0 {
		stats.AvgOrderValue = stats.TotalRevenue.DivRound(decimal.NewFromInt(int64(delivered)), avgOrderValuePlaces)
	}

	stats.TopProvinces = topProvinces(provinces, farmers, orders)

	return stats, nil
}

// topProvinces ranks provinces by farmer count, then order count, then name.
func topProvinces(provinces []*entity.Province, farmers []*entity.Farmer, orders []*entity.Order) []usecase.ProvinceActivity {
	activity := make(map[string]*usecase.ProvinceActivity, len(provinces))
	for _, province := range provinces {
		activity[province.ID] = &usecase.ProvinceActivity{ProvinceID: province.ID, Name: province.Name}
	}

	farmerProvince := make(map[string]string, len(farmers))
	for _, farmer := range farmers {
		if farmer.ProvinceID == nil {
			continue
		}
		if a, ok := activity[*farmer.ProvinceID]; ok {
			a.Farmers++
			farmerProvince[farmer.ID.String()] = *farmer.ProvinceID
		}
	}
	for _, order := range orders {
		if provinceID, ok := farmerProvince[order.FarmerID.String()]; ok {
			activity[provinceID].Orders++
		}
	}

	ranked := make([]usecase.ProvinceActivity, 0, len(activity))
	for _, a := range activity {
		if a.Farmers > 0 {
			ranked = append(ranked, *a)
		}
	}
	slices.SortFunc(ranked, func(a, b usecase.ProvinceActivity) int {
		if c := cmp.Compare(b.Farmers, a.Farmers); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Orders, a.Orders); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})

	if len(ranked) > topProvinceCount {
		ranked = ranked[:topProvinceCount]
	}

	return ranked
}

func (srv *adminService) Orders(ctx context.Context) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

func (srv *adminService) Products(ctx context.Context) ([]*entity.Product, error) {
	products, err := srv.productRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}
