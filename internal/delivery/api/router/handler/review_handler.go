package handler

import (
	"agriconnect/internal/delivery/api/response"
	"agriconnect/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ReviewHandler serves farmer reviews
type ReviewHandler struct {
	reviewUC usecase.ReviewUsecase
}

// NewReviewHandler is the constructor for ReviewHandler
func NewReviewHandler(reviewUC usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{reviewUC: reviewUC}
}

// CreateReviewRequest represents the request body for rating a farmer
type CreateReviewRequest struct {
	FarmerID uuid.UUID  `json:"farmerId" validate:"required"`
	OrderID  *uuid.UUID `json:"orderId"`
	Rating   int        `json:"rating" validate:"min=1,max=5"`
	Comment  string     `json:"comment"`
}

// CreateReview handles POST /api/reviews
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}

	var req CreateReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	review, err := h.reviewUC.CreateReview(c.Request().Context(), caller, usecase.CreateReviewInput{
		FarmerID: req.FarmerID,
		OrderID:  req.OrderID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, review)
}

// FarmerReviews handles GET /api/reviews/farmer/:id
func (h *ReviewHandler) FarmerReviews(c echo.Context) error {
	farmerID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}

	reviews, err := h.reviewUC.FarmerReviews(c.Request().Context(), farmerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, list(reviews))
}
