package handler

import (
	"agriconnect/internal/delivery/api/response"
	"agriconnect/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// LocationHandler serves the province, district and sector tree
type LocationHandler struct {
	locationUC usecase.LocationUsecase
}

// NewLocationHandler is the constructor for LocationHandler
func NewLocationHandler(locationUC usecase.LocationUsecase) *LocationHandler {
	return &LocationHandler{locationUC: locationUC}
}

// ListProvinces handles GET /api/locations/provinces
func (h *LocationHandler) ListProvinces(c echo.Context) error {
	provinces, err := h.locationUC.ListProvinces(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, list(provinces))
}

// ListDistricts handles GET /api/locations/districts/:provinceId
func (h *LocationHandler) ListDistricts(c echo.Context) error {
	districts, err := h.locationUC.ListDistricts(c.Request().Context(), c.Param("provinceId"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, list(districts))
}

// ListSectors handles GET /api/locations/sectors/:districtId
func (h *LocationHandler) ListSectors(c echo.Context) error {
	sectors, err := h.locationUC.ListSectors(c.Request().Context(), c.Param("districtId"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, list(sectors))
}
