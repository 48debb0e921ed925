package impl

import (
	"context"
	"log/slog"

	deliverycontext "agriconnect/internal/delivery/context"
	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	txManager  repository.TransactionManager
	reviewRepo repository.ReviewRepository
	farmerRepo repository.FarmerRepository
	logger     *slog.Logger
}

// ReviewServiceParams holds dependencies for ReviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	ReviewRepo repository.ReviewRepository
	FarmerRepo repository.FarmerRepository
	Logger     *slog.Logger
}

// NewReviewService creates a new review service instance
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		txManager:  params.TxManager,
		reviewRepo: params.ReviewRepo,
		farmerRepo: params.FarmerRepo,
		logger:     params.Logger,
	}
}

func (srv *reviewService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateReview stores the review and folds its rating into the farmer's mean in the same
// transaction, so no stored review is ever missing from the rating.
func (srv *reviewService) CreateReview(ctx context.Context, actor usecase.Actor, input usecase.CreateReviewInput) (*entity.Review, error) {
	if input.Rating < entity.MinRating || input.Rating > entity.MaxRating {
		return nil, domainerrors.NewValidationError("rating must be between %d and %d", entity.MinRating, entity.MaxRating)
	}

	review := &entity.Review{
		ID:         uuid.New(),
		CustomerID: actor.UserID,
		FarmerID:   input.FarmerID,
		OrderID:    input.OrderID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}

	var rated *entity.Farmer
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		farmerRepo := repoFactory.NewFarmerRepository()

		farmer, err := findFarmer(ctx, farmerRepo, input.FarmerID)
		if err != nil {
			return err
		}
		if farmer.UserID == actor.UserID {
			return domainerrors.NewAuthorizationError("farmers cannot review their own farm")
		}
		if input.OrderID != nil {
			if err := checkReviewedOrder(ctx, repoFactory.NewOrderRepository(), *input.OrderID, actor.UserID, farmer.ID); err != nil {
				return err
			}
		}

		if err := repoFactory.NewReviewRepository().Create(ctx, review); err != nil {
			return errors.Wrap(err, "failed to store review")
		}

		rated, err = farmerRepo.ApplyRating(ctx, farmer.ID, review.Rating)
		if err != nil {
			return errors.Wrap(err, "failed to update farmer rating")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create review")
	}

	srv.log(ctx).Info("Review recorded",
		slog.Any("farmerID", rated.ID),
		slog.String("rating", rated.Rating.StringFixed(entity.RatingPrecision)),
		slog.Int("totalRatings", rated.TotalRatings),
	)

	return review, nil
}

// checkReviewedOrder requires a linked order to be the reviewer's own order from that farmer.
func checkReviewedOrder(ctx context.Context, orderRepo repository.OrderRepository, orderID, customerID, farmerID uuid.UUID) error {
	order, err := orderRepo.FindByID(ctx, orderID)
	if errors.Is(err, repository.ErrOrderNotFound) {
		return domainerrors.NewValidationError("unknown order %s", orderID)
	}
	if err != nil {
		return errors.Wrap(err, "failed to find order")
	}
	if order.CustomerID != customerID || order.FarmerID != farmerID {
		return domainerrors.NewValidationError("order %s is not your order from this farmer", orderID)
	}

	return nil
}

func (srv *reviewService) FarmerReviews(ctx context.Context, farmerID uuid.UUID) ([]*entity.Review, error) {
	if _, err := findFarmer(ctx, srv.farmerRepo, farmerID); err != nil {
		return nil, err
	}

	reviews, err := srv.reviewRepo.FindByFarmer(ctx, farmerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	return reviews, nil
}
