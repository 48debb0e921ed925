package postgres

import (
	"context"

	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a GORM-backed review repository.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	reviewM := &model.ReviewModel{
		ID:         review.ID,
		CustomerID: review.CustomerID,
		FarmerID:   review.FarmerID,
		OrderID:    review.OrderID,
		Rating:     review.Rating,
		Comment:    review.Comment,
	}

	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(reviewM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrFarmerNotFound
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.NewValidationError("rating must be between %d and %d", entity.MinRating, entity.MaxRating)
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create review")
	}
	review.CreatedAt = reviewM.CreatedAt

	return nil
}

func (repo *reviewRepository) FindByFarmer(ctx context.Context, farmerID uuid.UUID) ([]*entity.Review, error) {
	var reviewMs []model.ReviewModel
	err := repo.db.WithContext(ctx).
		Preload("Customer").
		Where("farmer_id = ?", farmerID).
		Order("created_at ASC, id ASC").
		Find(&reviewMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	reviews := make([]*entity.Review, 0, len(reviewMs))
	for i := range reviewMs {
		r := &reviewMs[i]
		reviews = append(reviews, &entity.Review{
			ID:         r.ID,
			CustomerID: r.CustomerID,
			FarmerID:   r.FarmerID,
			OrderID:    r.OrderID,
			Rating:     r.Rating,
			Comment:    r.Comment,
			CreatedAt:  r.CreatedAt,
			Customer:   toUserDomain(r.Customer),
		})
	}

	return reviews, nil
}
