package usecase

import (
	"context"

	"agriconnect/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// ProvinceActivity counts the farmers located in a province and the orders they received.
type ProvinceActivity struct {
	ProvinceID string `json:"provinceId"`
	Name       string `json:"name"`
	Farmers    int    `json:"farmers"`
	Orders     int    `json:"orders"`
}

// Statistics is the back-office dashboard summary. Revenue counts delivered orders only.
type Statistics struct {
	TotalFarmers      int                        `json:"totalFarmers"`
	ActiveFarmers     int                        `json:"activeFarmers"`
	TotalCustomers    int                        `json:"totalCustomers"`
	TotalProducts     int                        `json:"totalProducts"`
	AvailableProducts int                        `json:"availableProducts"`
	TotalOrders       int                        `json:"totalOrders"`
	OrdersByStatus    map[entity.OrderStatus]int `json:"ordersByStatus"`
	TotalRevenue      decimal.Decimal            `json:"totalRevenue"`
	AvgOrderValue     decimal.Decimal            `json:"avgOrderValue"`
	TopProvinces      []ProvinceActivity         `json:"topProvinces"`
}

// AdminUsecase backs the admin dashboard. Callers are expected to have checked the admin role.
type AdminUsecase interface {
	Statistics(ctx context.Context) (*Statistics, error)
	Orders(ctx context.Context) ([]*entity.Order, error)
	Products(ctx context.Context) ([]*entity.Product, error)
}
