package handler

import (
	"agriconnect/internal/delivery/api/response"
	"agriconnect/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// InsightHandler serves demand predictions and personal recommendations
type InsightHandler struct {
	insightUC usecase.InsightUsecase
}

// NewInsightHandler is the constructor for InsightHandler
func NewInsightHandler(insightUC usecase.InsightUsecase) *InsightHandler {
	return &InsightHandler{insightUC: insightUC}
}

// DemandPredictions handles GET /api/ml/demand-predictions?categoryId&provinceId
func (h *InsightHandler) DemandPredictions(c echo.Context) error {
	predictions, err := h.insightUC.DemandPredictions(c.Request().Context(),
		c.QueryParam("categoryId"), c.QueryParam("provinceId"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, list(predictions))
}

// Recommendations handles GET /api/ml/recommendations
func (h *InsightHandler) Recommendations(c echo.Context) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}

	recommendations, err := h.insightUC.Recommendations(c.Request().Context(), caller.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, list(recommendations))
}

// RefreshRecommendations handles POST /api/ml/recommendations/refresh
func (h *InsightHandler) RefreshRecommendations(c echo.Context) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}

	recommendations, err := h.insightUC.RefreshRecommendations(c.Request().Context(), caller.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, list(recommendations))
}
