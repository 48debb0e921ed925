package memory

import (
	"context"

	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/repository"

	"github.com/google/uuid"
)

type reviewRepository struct {
	acc access
}

// NewReviewRepository creates a review repository backed by the store.
func NewReviewRepository(store *Store) repository.ReviewRepository {
	return &reviewRepository{acc: store}
}

func (repo *reviewRepository) Create(_ context.Context, review *entity.Review) error {
	return repo.acc.write(func(t *tables) error {
		if _, ok := t.farmers[review.FarmerID]; !ok {
			return repository.ErrFarmerNotFound
		}
		if review.ID == uuid.Nil {
			review.ID = uuid.New()
		}

		review.CreatedAt = repo.acc.now()
		stored := *review
		stored.Customer = nil
		t.reviews[review.ID] = stored
		t.reviewOrder = append(t.reviewOrder, review.ID)

		return nil
	})
}

func (repo *reviewRepository) FindByFarmer(_ context.Context, farmerID uuid.UUID) ([]*entity.Review, error) {
	var reviews []*entity.Review
	err := repo.acc.read(func(t *tables) error {
		for _, id := range t.reviewOrder {
			r := t.reviews[id]
			if r.FarmerID != farmerID {
				continue
			}
			r.Customer = t.userView(r.CustomerID)
			reviews = append(reviews, &r)
		}

		return nil
	})

	return reviews, err
}
