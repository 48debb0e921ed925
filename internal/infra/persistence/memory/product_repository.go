package memory

import (
	"context"

	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/repository"

	"github.com/google/uuid"
)

type productRepository struct {
	acc access
}

// NewProductRepository creates a product repository backed by the store.
func NewProductRepository(store *Store) repository.ProductRepository {
	return &productRepository{acc: store}
}

func (repo *productRepository) Create(_ context.Context, product *entity.Product) error {
	return repo.acc.write(func(t *tables) error {
		if _, ok := t.farmers[product.FarmerID]; !ok {
			return repository.ErrFarmerNotFound
		}
		if product.ID == uuid.Nil {
			product.ID = uuid.New()
		}

		now := repo.acc.now()
		product.CreatedAt, product.UpdatedAt = now, now
		product.Version = 1
		stored := *product
		stored.Farmer = nil
		t.products[product.ID] = stored
		t.productOrder = append(t.productOrder, product.ID)

		return nil
	})
}

func (repo *productRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	var found *entity.Product
	err := repo.acc.read(func(t *tables) error {
		p, ok := t.products[id]
		if !ok {
			return repository.ErrProductNotFound
		}
		found = t.productView(p)

		return nil
	})

	return found, err
}

func (repo *productRepository) FindByFarmer(_ context.Context, farmerID uuid.UUID) ([]*entity.Product, error) {
	var products []*entity.Product
	err := repo.acc.read(func(t *tables) error {
		for _, id := range t.productOrder {
			if p := t.products[id]; p.FarmerID == farmerID {
				products = append(products, &p)
			}
		}

		return nil
	})

	return products, err
}

func (repo *productRepository) Search(_ context.Context, filter entity.ProductFilter) ([]*entity.Product, error) {
	var products []*entity.Product
	err := repo.acc.read(func(t *tables) error {
		for _, id := range t.productOrder {
			p := t.products[id]
			if !p.IsAvailable || !filter.MatchesProduct(&p) {
				continue
			}

			f, ok := t.farmers[p.FarmerID]
			if !ok || !f.IsActive || !filter.MatchesFarmer(&f) {
				continue
			}
			products = append(products, t.productView(p))
		}

		return nil
	})

	return products, err
}

func (repo *productRepository) FindAll(_ context.Context) ([]*entity.Product, error) {
	var products []*entity.Product
	err := repo.acc.read(func(t *tables) error {
		for _, id := range t.productOrder {
			products = append(products, t.productView(t.products[id]))
		}

		return nil
	})

	return products, err
}

func (repo *productRepository) Update(_ context.Context, product *entity.Product) error {
	return repo.acc.write(func(t *tables) error {
		stored, ok := t.products[product.ID]
		if !ok {
			return repository.ErrProductNotFound
		}
		if stored.Version != product.Version {
			return repository.ErrVersionConflict
		}

		product.Version = stored.Version + 1
		product.UpdatedAt = repo.acc.now()
		product.CreatedAt = stored.CreatedAt
		product.FarmerID = stored.FarmerID
		updated := *product
		updated.Farmer = nil
		t.products[product.ID] = updated

		return nil
	})
}
