package handler

import (
	"net/http"

	"agriconnect/internal/delivery/api/response"
	"agriconnect/internal/domain/entity"
	"agriconnect/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// FarmerHandler serves farmer profiles, farmer search and share QR codes
type FarmerHandler struct {
	farmerUC usecase.FarmerUsecase
}

// NewFarmerHandler is the constructor for FarmerHandler
func NewFarmerHandler(farmerUC usecase.FarmerUsecase) *FarmerHandler {
	return &FarmerHandler{farmerUC: farmerUC}
}

// CreateFarmerRequest represents the request body for registering a farmer profile
type CreateFarmerRequest struct {
	FarmName    string   `json:"farmName" validate:"required"`
	Description string   `json:"description"`
	Phone       string   `json:"phone"`
	ProvinceID  *string  `json:"provinceId"`
	DistrictID  *string  `json:"districtId"`
	SectorID    *string  `json:"sectorId"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
}

// UpdateFarmerRequest represents a partial farmer profile edit
type UpdateFarmerRequest struct {
	FarmName    *string  `json:"farmName"`
	Description *string  `json:"description"`
	Phone       *string  `json:"phone"`
	ProvinceID  *string  `json:"provinceId"`
	DistrictID  *string  `json:"districtId"`
	SectorID    *string  `json:"sectorId"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
	IsActive    *bool    `json:"isActive"`
}

// CreateFarmer handles POST /api/farmers
func (h *FarmerHandler) CreateFarmer(c echo.Context) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}

	var req CreateFarmerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	farmer, err := h.farmerUC.CreateFarmer(c.Request().Context(), caller, usecase.CreateFarmerInput{
		FarmName:    req.FarmName,
		Description: req.Description,
		Phone:       req.Phone,
		ProvinceID:  req.ProvinceID,
		DistrictID:  req.DistrictID,
		SectorID:    req.SectorID,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, farmer)
}

// GetMyFarmer handles GET /api/farmers/me
func (h *FarmerHandler) GetMyFarmer(c echo.Context) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}

	farmer, err := h.farmerUC.GetMyFarmer(c.Request().Context(), caller.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, farmer)
}

// UpdateMyFarmer handles PATCH /api/farmers/me
func (h *FarmerHandler) UpdateMyFarmer(c echo.Context) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}

	var req UpdateFarmerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	farmer, err := h.farmerUC.UpdateMyFarmer(c.Request().Context(), caller.UserID, usecase.UpdateFarmerInput{
		FarmName:    req.FarmName,
		Description: req.Description,
		Phone:       req.Phone,
		ProvinceID:  req.ProvinceID,
		DistrictID:  req.DistrictID,
		SectorID:    req.SectorID,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		IsActive:    req.IsActive,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, farmer)
}

// GetFarmer handles GET /api/farmers/:id
func (h *FarmerHandler) GetFarmer(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	farmer, err := h.farmerUC.GetFarmer(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, farmer)
}

// SearchFarmers handles GET /api/farmers/search?provinceId&districtId&sectorId&category&userLat&userLng&maxDistance.
// maxDistance is ignored without a requester position.
func (h *FarmerHandler) SearchFarmers(c echo.Context) error {
	origin, err := originQuery(c)
	if err != nil {
		return err
	}
	maxDistance, err := floatQuery(c, "maxDistance")
	if err != nil {
		return err
	}

	matches, err := h.farmerUC.SearchFarmers(c.Request().Context(), usecase.SearchFarmersInput{
		Filter: entity.FarmerFilter{
			ProvinceID: c.QueryParam("provinceId"),
			DistrictID: c.QueryParam("districtId"),
			SectorID:   c.QueryParam("sectorId"),
			CategoryID: c.QueryParam("category"),
		},
		Origin:        origin,
		MaxDistanceKm: maxDistance,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, list(matches))
}

// FarmerQRCode handles GET /api/farmers/:id/qr and answers with a PNG image.
func (h *FarmerHandler) FarmerQRCode(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	png, err := h.farmerUC.FarmerQRCode(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
