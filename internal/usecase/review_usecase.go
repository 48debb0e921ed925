package usecase

import (
	"context"

	"agriconnect/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateReviewInput represents a customer's rating of a farmer
type CreateReviewInput struct {
	FarmerID uuid.UUID
	OrderID  *uuid.UUID
	Rating   int
	Comment  string
}

// ReviewUsecase records reviews and folds them into farmer ratings
type ReviewUsecase interface {
	CreateReview(ctx context.Context, actor Actor, input CreateReviewInput) (*entity.Review, error)
	FarmerReviews(ctx context.Context, farmerID uuid.UUID) ([]*entity.Review, error)
}
