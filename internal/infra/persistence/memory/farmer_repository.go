package memory

import (
	"context"

	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/repository"

	"github.com/google/uuid"
)

type farmerRepository struct {
	acc access
}

// NewFarmerRepository creates a farmer repository backed by the store.
func NewFarmerRepository(store *Store) repository.FarmerRepository {
	return &farmerRepository{acc: store}
}

func (repo *farmerRepository) Create(_ context.Context, farmer *entity.Farmer) error {
	return repo.acc.write(func(t *tables) error {
		for _, f := range t.farmers {
			if f.UserID == farmer.UserID {
				return domainerrors.ErrFarmerAlreadyExists.WrapMessage("farmer profile already exists")
			}
		}
		if farmer.ID == uuid.Nil {
			farmer.ID = uuid.New()
		}

		now := repo.acc.now()
		farmer.CreatedAt, farmer.UpdatedAt = now, now
		stored := *farmer
		stored.User = nil
		t.farmers[farmer.ID] = stored
		t.farmerOrder = append(t.farmerOrder, farmer.ID)

		return nil
	})
}

func (repo *farmerRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Farmer, error) {
	var found *entity.Farmer
	err := repo.acc.read(func(t *tables) error {
		f, ok := t.farmers[id]
		if !ok {
			return repository.ErrFarmerNotFound
		}
		found = t.farmerView(f)

		return nil
	})

	return found, err
}

func (repo *farmerRepository) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.Farmer, error) {
	var found *entity.Farmer
	err := repo.acc.read(func(t *tables) error {
		for _, id := range t.farmerOrder {
			if f := t.farmers[id]; f.UserID == userID {
				found = t.farmerView(f)

				return nil
			}
		}

		return repository.ErrFarmerNotFound
	})

	return found, err
}

func (repo *farmerRepository) Search(_ context.Context, filter entity.FarmerFilter) ([]*entity.Farmer, error) {
	var farmers []*entity.Farmer
	err := repo.acc.read(func(t *tables) error {
		for _, id := range t.farmerOrder {
			f := t.farmers[id]
			if !f.IsActive || !filter.MatchesLocation(&f) {
				continue
			}
			if filter.CategoryID != "" && !t.offersCategory(f.ID, filter.CategoryID) {
				continue
			}
			farmers = append(farmers, t.farmerView(f))
		}

		return nil
	})

	return farmers, err
}

func (repo *farmerRepository) FindAll(_ context.Context) ([]*entity.Farmer, error) {
	var farmers []*entity.Farmer
	err := repo.acc.read(func(t *tables) error {
		for _, id := range t.farmerOrder {
			farmers = append(farmers, t.farmerView(t.farmers[id]))
		}

		return nil
	})

	return farmers, err
}

func (repo *farmerRepository) Update(_ context.Context, farmer *entity.Farmer) error {
	return repo.acc.write(func(t *tables) error {
		stored, ok := t.farmers[farmer.ID]
		if !ok {
			return repository.ErrFarmerNotFound
		}

		updated := *farmer
		updated.User = nil
		updated.UserID = stored.UserID
		updated.Rating = stored.Rating
		updated.TotalRatings = stored.TotalRatings
		updated.RatingSum = stored.RatingSum
		updated.CreatedAt = stored.CreatedAt
		updated.UpdatedAt = repo.acc.now()
		t.farmers[farmer.ID] = updated
		farmer.UpdatedAt = updated.UpdatedAt

		return nil
	})
}

func (repo *farmerRepository) ApplyRating(_ context.Context, id uuid.UUID, rating int) (*entity.Farmer, error) {
	var updated *entity.Farmer
	err := repo.acc.write(func(t *tables) error {
		f, ok := t.farmers[id]
		if !ok {
			return repository.ErrFarmerNotFound
		}

		f.ApplyRating(rating)
		f.UpdatedAt = repo.acc.now()
		t.farmers[id] = f
		updated = t.farmerView(f)

		return nil
	})

	return updated, err
}

func (t *tables) offersCategory(farmerID uuid.UUID, categoryID string) bool {
	for _, p := range t.products {
		if p.FarmerID == farmerID && p.IsAvailable && p.InCategory(categoryID) {
			return true
		}
	}

	return false
}
