package postgres

import (
	"context"

	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type locationRepository struct {
	db *gorm.DB
}

// NewLocationRepository creates a GORM-backed location hierarchy repository.
func NewLocationRepository(db *gorm.DB) repository.LocationRepository {
	return &locationRepository{db: db}
}

func (repo *locationRepository) ListProvinces(ctx context.Context) ([]*entity.Province, error) {
	var provinceMs []model.ProvinceModel
	if err := repo.db.WithContext(ctx).Order("name ASC").Find(&provinceMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list provinces")
	}

	provinces := make([]*entity.Province, 0, len(provinceMs))
	for i := range provinceMs {
		provinces = append(provinces, toProvinceDomain(&provinceMs[i]))
	}

	return provinces, nil
}

func (repo *locationRepository) ListDistricts(ctx context.Context, provinceID string) ([]*entity.District, error) {
	var districtMs []model.DistrictModel
	err := repo.db.WithContext(ctx).Where("province_id = ?", provinceID).Order("name ASC").Find(&districtMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list districts")
	}

	districts := make([]*entity.District, 0, len(districtMs))
	for i := range districtMs {
		districts = append(districts, toDistrictDomain(&districtMs[i]))
	}

	return districts, nil
}

func (repo *locationRepository) ListSectors(ctx context.Context, districtID string) ([]*entity.Sector, error) {
	var sectorMs []model.SectorModel
	err := repo.db.WithContext(ctx).Where("district_id = ?", districtID).Order("name ASC").Find(&sectorMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sectors")
	}

	sectors := make([]*entity.Sector, 0, len(sectorMs))
	for i := range sectorMs {
		sectors = append(sectors, toSectorDomain(&sectorMs[i]))
	}

	return sectors, nil
}

func (repo *locationRepository) FindProvince(ctx context.Context, id string) (*entity.Province, error) {
	var provinceM model.ProvinceModel
	if err := first(ctx, repo.db, &provinceM, id, repository.ErrLocationNotFound); err != nil {
		return nil, err
	}

	return toProvinceDomain(&provinceM), nil
}

func (repo *locationRepository) FindDistrict(ctx context.Context, id string) (*entity.District, error) {
	var districtM model.DistrictModel
	if err := first(ctx, repo.db, &districtM, id, repository.ErrLocationNotFound); err != nil {
		return nil, err
	}

	return toDistrictDomain(&districtM), nil
}

func (repo *locationRepository) FindSector(ctx context.Context, id string) (*entity.Sector, error) {
	var sectorM model.SectorModel
	if err := first(ctx, repo.db, &sectorM, id, repository.ErrLocationNotFound); err != nil {
		return nil, err
	}

	return toSectorDomain(&sectorM), nil
}

func (repo *locationRepository) SaveProvince(ctx context.Context, province *entity.Province) error {
	return upsertReference(ctx, repo.db, &model.ProvinceModel{
		ID:              province.ID,
		Name:            province.Name,
		NameKinyarwanda: province.NameKinyarwanda,
	}, repository.ErrLocationNotFound)
}

func (repo *locationRepository) SaveDistrict(ctx context.Context, district *entity.District) error {
	return upsertReference(ctx, repo.db, &model.DistrictModel{
		ID:              district.ID,
		ProvinceID:      district.ProvinceID,
		Name:            district.Name,
		NameKinyarwanda: district.NameKinyarwanda,
	}, repository.ErrLocationNotFound)
}

func (repo *locationRepository) SaveSector(ctx context.Context, sector *entity.Sector) error {
	return upsertReference(ctx, repo.db, &model.SectorModel{
		ID:              sector.ID,
		DistrictID:      sector.DistrictID,
		Name:            sector.Name,
		NameKinyarwanda: sector.NameKinyarwanda,
	}, repository.ErrLocationNotFound)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a GORM-backed product category repository.
func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (repo *categoryRepository) List(ctx context.Context) ([]*entity.ProductCategory, error) {
	var categoryMs []model.CategoryModel
	if err := repo.db.WithContext(ctx).Order("name ASC").Find(&categoryMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	categories := make([]*entity.ProductCategory, 0, len(categoryMs))
	for i := range categoryMs {
		categories = append(categories, toCategoryDomain(&categoryMs[i]))
	}

	return categories, nil
}

func (repo *categoryRepository) FindByID(ctx context.Context, id string) (*entity.ProductCategory, error) {
	var categoryM model.CategoryModel
	if err := first(ctx, repo.db, &categoryM, id, repository.ErrCategoryNotFound); err != nil {
		return nil, err
	}

	return toCategoryDomain(&categoryM), nil
}

func (repo *categoryRepository) Save(ctx context.Context, category *entity.ProductCategory) error {
	return upsertReference(ctx, repo.db, &model.CategoryModel{
		ID:              category.ID,
		Name:            category.Name,
		NameKinyarwanda: category.NameKinyarwanda,
		Description:     category.Description,
	}, repository.ErrCategoryNotFound)
}

func first(ctx context.Context, db *gorm.DB, dest any, id string, notFound error) error {
	if err := db.WithContext(ctx).First(dest, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFound
		}

		return errors.Wrap(err, "failed to find reference row")
	}

	return nil
}

// upsertReference inserts a reference row or overwrites the one with the same id.
// A missing parent surfaces as parentMissing.
func upsertReference(ctx context.Context, db *gorm.DB, row any, parentMissing error) error {
	err := db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(row).Error
	if err == nil {
		return nil
	}
	if isForeignKeyConstraintViolation(err) {
		return parentMissing
	}

	return domainerrors.NewDatabaseExecuteError(err, "failed to save reference data")
}

// --- Mapper Functions ---

func toProvinceDomain(data *model.ProvinceModel) *entity.Province {
	return &entity.Province{ID: data.ID, Name: data.Name, NameKinyarwanda: data.NameKinyarwanda}
}

func toDistrictDomain(data *model.DistrictModel) *entity.District {
	return &entity.District{
		ID:              data.ID,
		ProvinceID:      data.ProvinceID,
		Name:            data.Name,
		NameKinyarwanda: data.NameKinyarwanda,
	}
}

func toSectorDomain(data *model.SectorModel) *entity.Sector {
	return &entity.Sector{
		ID:              data.ID,
		DistrictID:      data.DistrictID,
		Name:            data.Name,
		NameKinyarwanda: data.NameKinyarwanda,
	}
}

func toCategoryDomain(data *model.CategoryModel) *entity.ProductCategory {
	return &entity.ProductCategory{
		ID:              data.ID,
		Name:            data.Name,
		NameKinyarwanda: data.NameKinyarwanda,
		Description:     data.Description,
	}
}
