package handler

import (
	"agriconnect/internal/delivery/api/response"
	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AdminHandler serves the back-office dashboard. Routes are mounted behind the admin role check.
type AdminHandler struct {
	adminUC usecase.AdminUsecase
	userUC  usecase.UserUsecase
}

// AdminHandlerParams holds dependencies for AdminHandler, injected by Fx.
type AdminHandlerParams struct {
	fx.In

	AdminUC usecase.AdminUsecase
	UserUC  usecase.UserUsecase
}

// NewAdminHandler is the constructor for AdminHandler
func NewAdminHandler(params AdminHandlerParams) *AdminHandler {
	return &AdminHandler{
		adminUC: params.AdminUC,
		userUC:  params.UserUC,
	}
}

// Users handles GET /api/admin/users?email&role
func (h *AdminHandler) Users(c echo.Context) error {
	role := entity.Role(c.QueryParam("role"))
	if role != "" && !role.IsValid() {
		return domainerrors.NewValidationError("unknown role %q", role)
	}

	users, err := h.userUC.SearchUsers(c.Request().Context(), entity.UserFilter{
		Email: c.QueryParam("email"),
		Role:  role,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, list(users))
}

// Orders handles GET /api/admin/orders
func (h *AdminHandler) Orders(c echo.Context) error {
	orders, err := h.adminUC.Orders(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, list(orders))
}

// Products handles GET /api/admin/products
func (h *AdminHandler) Products(c echo.Context) error {
	products, err := h.adminUC.Products(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, list(products))
}

// Statistics handles GET /api/admin/statistics
func (h *AdminHandler) Statistics(c echo.Context) error {
	stats, err := h.adminUC.Statistics(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, stats)
}
