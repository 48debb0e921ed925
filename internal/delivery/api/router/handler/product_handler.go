package handler

import (
	"agriconnect/internal/delivery/api/response"
	"agriconnect/internal/domain/entity"
	"agriconnect/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ProductHandler serves the catalog
type ProductHandler struct {
	productUC usecase.ProductUsecase
}

// NewProductHandler is the constructor for ProductHandler
func NewProductHandler(productUC usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{productUC: productUC}
}

// CreateProductRequest represents the request body for listing a product
type CreateProductRequest struct {
	CategoryID        *string          `json:"categoryId"`
	Name              string           `json:"name" validate:"required"`
	NameKinyarwanda   string           `json:"nameKinyarwanda"`
	Description       string           `json:"description"`
	Unit              string           `json:"unit" validate:"required"`
	PricePerUnit      *decimal.Decimal `json:"pricePerUnit" validate:"required"`
	AvailableQuantity *int             `json:"availableQuantity"`
	MinOrderQuantity  *int             `json:"minOrderQuantity"`
	IsAvailable       *bool            `json:"isAvailable"`
	ImageURL          string           `json:"imageUrl" validate:"omitempty,url"`
}

// UpdateProductRequest represents a partial product edit
type UpdateProductRequest struct {
	Name              *string          `json:"name"`
	Description       *string          `json:"description"`
	PricePerUnit      *decimal.Decimal `json:"pricePerUnit"`
	AvailableQuantity *int             `json:"availableQuantity"`
	MinOrderQuantity  *int             `json:"minOrderQuantity"`
	IsAvailable       *bool            `json:"isAvailable"`
	ImageURL          *string          `json:"imageUrl" validate:"omitempty,url"`
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}

	var req CreateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.productUC.CreateProduct(c.Request().Context(), caller, usecase.CreateProductInput{
		CategoryID:        req.CategoryID,
		Name:              req.Name,
		NameKinyarwanda:   req.NameKinyarwanda,
		Description:       req.Description,
		Unit:              req.Unit,
		PricePerUnit:      req.PricePerUnit,
		AvailableQuantity: req.AvailableQuantity,
		MinOrderQuantity:  req.MinOrderQuantity,
		IsAvailable:       req.IsAvailable,
		ImageURL:          req.ImageURL,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, product)
}

// UpdateProduct handles PATCH /api/products/:id
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.productUC.UpdateProduct(c.Request().Context(), caller, id, usecase.UpdateProductInput{
		Name:              req.Name,
		Description:       req.Description,
		PricePerUnit:      req.PricePerUnit,
		AvailableQuantity: req.AvailableQuantity,
		MinOrderQuantity:  req.MinOrderQuantity,
		IsAvailable:       req.IsAvailable,
		ImageURL:          req.ImageURL,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, product)
}

// GetProduct handles GET /api/products/:id
func (h *ProductHandler) GetProduct(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	product, err := h.productUC.GetProduct(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, product)
}

// SearchProducts handles GET /api/products/search?categoryId&provinceId&districtId&minPrice&maxPrice
func (h *ProductHandler) SearchProducts(c echo.Context) error {
	minPrice, err := decimalQuery(c, "minPrice")
	if err != nil {
		return err
	}
	maxPrice, err := decimalQuery(c, "maxPrice")
	if err != nil {
		return err
	}

	products, err := h.productUC.SearchProducts(c.Request().Context(), entity.ProductFilter{
		CategoryID: c.QueryParam("categoryId"),
		ProvinceID: c.QueryParam("provinceId"),
		DistrictID: c.QueryParam("districtId"),
		MinPrice:   minPrice,
		MaxPrice:   maxPrice,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, list(products))
}

// ProductsByFarmer handles GET /api/products/farmer/:id
func (h *ProductHandler) ProductsByFarmer(c echo.Context) error {
	farmerID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	products, err := h.productUC.ProductsByFarmer(c.Request().Context(), farmerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, list(products))
}

// ListCategories handles GET /api/products/categories
func (h *ProductHandler) ListCategories(c echo.Context) error {
	categories, err := h.productUC.ListCategories(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, list(categories))
}

// ComparePrices handles GET /api/products/price-comparison/:categoryId?provinceId&userLat&userLng
func (h *ProductHandler) ComparePrices(c echo.Context) error {
	origin, err := originQuery(c)
	if err != nil {
		return err
	}

	result, err := h.productUC.ComparePrices(c.Request().Context(), usecase.PriceComparisonInput{
		CategoryID: c.Param("categoryId"),
		ProvinceID: c.QueryParam("provinceId"),
		Origin:     origin,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, result)
}
