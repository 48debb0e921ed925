package memory

import (
	"cmp"
	"context"
	"slices"

	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/repository"
)

type locationRepository struct {
	acc access
}

// NewLocationRepository creates a location repository backed by the store.
func NewLocationRepository(store *Store) repository.LocationRepository {
	return &locationRepository{acc: store}
}

func (repo *locationRepository) ListProvinces(_ context.Context) ([]*entity.Province, error) {
	var provinces []*entity.Province
	err := repo.acc.read(func(t *tables) error {
		for _, id := range t.provinceOrder {
			p := t.provinces[id]
			provinces = append(provinces, &p)
		}

		slices.SortStableFunc(provinces, func(a, b *entity.Province) int { return cmp.Compare(a.Name, b.Name) })

		return nil
	})

	return provinces, err
}

func (repo *locationRepository) ListDistricts(_ context.Context, provinceID string) ([]*entity.District, error) {
	var districts []*entity.District
	err := repo.acc.read(func(t *tables) error {
		for _, id := range t.districtOrder {
			if d := t.districts[id]; d.ProvinceID == provinceID {
				districts = append(districts, &d)
			}
		}

		slices.SortStableFunc(districts, func(a, b *entity.District) int { return cmp.Compare(a.Name, b.Name) })

		return nil
	})

	return districts, err
}

func (repo *locationRepository) ListSectors(_ context.Context, districtID string) ([]*entity.Sector, error) {
	var sectors []*entity.Sector
	err := repo.acc.read(func(t *tables) error {
		for _, id := range t.sectorOrder {
			if s := t.sectors[id]; s.DistrictID == districtID {
				sectors = append(sectors, &s)
			}
		}

		slices.SortStableFunc(sectors, func(a, b *entity.Sector) int { return cmp.Compare(a.Name, b.Name) })

		return nil
	})

	return sectors, err
}

func (repo *locationRepository) FindProvince(_ context.Context, id string) (*entity.Province, error) {
	return findByKey(repo.acc, func(t *tables) (entity.Province, bool) {
		p, ok := t.provinces[id]

		return p, ok
	}, repository.ErrLocationNotFound)
}

func (repo *locationRepository) FindDistrict(_ context.Context, id string) (*entity.District, error) {
	return findByKey(repo.acc, func(t *tables) (entity.District, bool) {
		d, ok := t.districts[id]

		return d, ok
	}, repository.ErrLocationNotFound)
}

func (repo *locationRepository) FindSector(_ context.Context, id string) (*entity.Sector, error) {
	return findByKey(repo.acc, func(t *tables) (entity.Sector, bool) {
		s, ok := t.sectors[id]

		return s, ok
	}, repository.ErrLocationNotFound)
}

func (repo *locationRepository) SaveProvince(_ context.Context, province *entity.Province) error {
	return repo.acc.write(func(t *tables) error {
		if _, exists := t.provinces[province.ID]; !exists {
			t.provinceOrder = append(t.provinceOrder, province.ID)
		}
		t.provinces[province.ID] = *province

		return nil
	})
}

func (repo *locationRepository) SaveDistrict(_ context.Context, district *entity.District) error {
	return repo.acc.write(func(t *tables) error {
		if _, ok := t.provinces[district.ProvinceID]; !ok {
			return repository.ErrLocationNotFound
		}
		if _, exists := t.districts[district.ID]; !exists {
			t.districtOrder = append(t.districtOrder, district.ID)
		}
		t.districts[district.ID] = *district

		return nil
	})
}

func (repo *locationRepository) SaveSector(_ context.Context, sector *entity.Sector) error {
	return repo.acc.write(func(t *tables) error {
		if _, ok := t.districts[sector.DistrictID]; !ok {
			return repository.ErrLocationNotFound
		}
		if _, exists := t.sectors[sector.ID]; !exists {
			t.sectorOrder = append(t.sectorOrder, sector.ID)
		}
		t.sectors[sector.ID] = *sector

		return nil
	})
}

type categoryRepository struct {
	acc access
}

// NewCategoryRepository creates a category repository backed by the store.
func NewCategoryRepository(store *Store) repository.CategoryRepository {
	return &categoryRepository{acc: store}
}

func (repo *categoryRepository) List(_ context.Context) ([]*entity.ProductCategory, error) {
	var categories []*entity.ProductCategory
	err := repo.acc.read(func(t *tables) error {
		for _, id := range t.categoryOrder {
			c := t.categories[id]
			categories = append(categories, &c)
		}

		slices.SortStableFunc(categories, func(a, b *entity.ProductCategory) int { return cmp.Compare(a.Name, b.Name) })

		return nil
	})

	return categories, err
}

func (repo *categoryRepository) FindByID(_ context.Context, id string) (*entity.ProductCategory, error) {
	return findByKey(repo.acc, func(t *tables) (entity.ProductCategory, bool) {
		c, ok := t.categories[id]

		return c, ok
	}, repository.ErrCategoryNotFound)
}

func (repo *categoryRepository) Save(_ context.Context, category *entity.ProductCategory) error {
	return repo.acc.write(func(t *tables) error {
		if _, exists := t.categories[category.ID]; !exists {
			t.categoryOrder = append(t.categoryOrder, category.ID)
		}
		t.categories[category.ID] = *category

		return nil
	})
}

func findByKey[T any](acc access, lookup func(t *tables) (T, bool), notFound error) (*T, error) {
	var found *T
	err := acc.read(func(t *tables) error {
		v, ok := lookup(t)
		if !ok {
			return notFound
		}
		found = &v

		return nil
	})

	return found, err
}
