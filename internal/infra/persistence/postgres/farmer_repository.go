package postgres

import (
	"context"
	"time"

	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type farmerRepository struct {
	db *gorm.DB
}

// NewFarmerRepository creates a GORM-backed farmer repository.
func NewFarmerRepository(db *gorm.DB) repository.FarmerRepository {
	return &farmerRepository{db: db}
}

func (repo *farmerRepository) Create(ctx context.Context, farmer *entity.Farmer) error {
	if farmer.ID == uuid.Nil {
		farmer.ID = uuid.New()
	}
	farmerM := fromFarmerDomain(farmer)

	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(farmerM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrFarmerAlreadyExists.WrapMessage("farmer profile already exists")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid user reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create farmer")
	}

	farmer.CreatedAt = farmerM.CreatedAt
	farmer.UpdatedAt = farmerM.UpdatedAt

	return nil
}

func (repo *farmerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Farmer, error) {
	return repo.findOne(ctx, "id = ?", id)
}

func (repo *farmerRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Farmer, error) {
	return repo.findOne(ctx, "user_id = ?", userID)
}

func (repo *farmerRepository) findOne(ctx context.Context, query string, arg any) (*entity.Farmer, error) {
	var farmerM model.FarmerModel
	if err := repo.db.WithContext(ctx).Preload("User").First(&farmerM, query, arg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrFarmerNotFound
		}

		return nil, errors.Wrap(err, "failed to find farmer")
	}

	return toFarmerDomain(&farmerM), nil
}

func (repo *farmerRepository) Search(ctx context.Context, filter entity.FarmerFilter) ([]*entity.Farmer, error) {
	query := repo.db.WithContext(ctx).Preload("User").Where("farmers.is_active = ?", true)
	if filter.ProvinceID != "" {
		query = query.Where("farmers.province_id = ?", filter.ProvinceID)
	}
	if filter.DistrictID != "" {
		query = query.Where("farmers.district_id = ?", filter.DistrictID)
	}
	if filter.SectorID != "" {
		query = query.Where("farmers.sector_id = ?", filter.SectorID)
	}
	if filter.CategoryID != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM products p WHERE p.farmer_id = farmers.id AND p.is_available AND p.category_id = ?)",
			filter.CategoryID,
		)
	}

	return repo.list(query)
}

func (repo *farmerRepository) FindAll(ctx context.Context) ([]*entity.Farmer, error) {
	return repo.list(repo.db.WithContext(ctx).Preload("User"))
}

func (repo *farmerRepository) list(query *gorm.DB) ([]*entity.Farmer, error) {
	var farmerMs []model.FarmerModel
	if err := query.Order("farmers.created_at ASC, farmers.id ASC").Find(&farmerMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list farmers")
	}

	farmers := make([]*entity.Farmer, 0, len(farmerMs))
	for i := range farmerMs {
		farmers = append(farmers, toFarmerDomain(&farmerMs[i]))
	}

	return farmers, nil
}

func (repo *farmerRepository) Update(ctx context.Context, farmer *entity.Farmer) error {
	now := time.Now().UTC()
	result := repo.db.WithContext(ctx).Model(&model.FarmerModel{}).Where("id = ?", farmer.ID).Updates(map[string]any{
		"farm_name":   farmer.FarmName,
		"description": farmer.Description,
		"province_id": farmer.ProvinceID,
		"district_id": farmer.DistrictID,
		"sector_id":   farmer.SectorID,
		"latitude":    farmer.Latitude,
		"longitude":   farmer.Longitude,
		"phone":       farmer.Phone,
		"is_active":   farmer.IsActive,
		"updated_at":  now,
	})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update farmer")
	}
	if result.RowsAffected == 0 {
		return repository.ErrFarmerNotFound
	}
	farmer.UpdatedAt = now

	return nil
}

// ApplyRating takes a row lock on the farmer so concurrent reviews fold in one at a time.
func (repo *farmerRepository) ApplyRating(ctx context.Context, id uuid.UUID, rating int) (*entity.Farmer, error) {
	var updated *entity.Farmer
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var farmerM model.FarmerModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&farmerM, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrFarmerNotFound
			}

			return errors.Wrap(err, "failed to lock farmer")
		}

		farmer := toFarmerDomain(&farmerM)
		farmer.ApplyRating(rating)
		farmer.UpdatedAt = time.Now().UTC()

		if err := tx.Model(&model.FarmerModel{}).Where("id = ?", id).Updates(map[string]any{
			"rating":        farmer.Rating,
			"total_ratings": farmer.TotalRatings,
			"rating_sum":    farmer.RatingSum,
			"updated_at":    farmer.UpdatedAt,
		}).Error; err != nil {
			return domainerrors.NewDatabaseExecuteError(err, "failed to update farmer rating")
		}

		updated = farmer

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// --- Mapper Functions ---

func toFarmerDomain(data *model.FarmerModel) *entity.Farmer {
	if data == nil {
		return nil
	}

	return &entity.Farmer{
		ID:           data.ID,
		UserID:       data.UserID,
		FarmName:     data.FarmName,
		Description:  data.Description,
		ProvinceID:   data.ProvinceID,
		DistrictID:   data.DistrictID,
		SectorID:     data.SectorID,
		Latitude:     data.Latitude,
		Longitude:    data.Longitude,
		Phone:        data.Phone,
		Rating:       data.Rating,
		TotalRatings: data.TotalRatings,
		RatingSum:    data.RatingSum,
		IsActive:     data.IsActive,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
		User:         toUserDomain(data.User),
	}
}

func fromFarmerDomain(data *entity.Farmer) *model.FarmerModel {
	return &model.FarmerModel{
		ID:           data.ID,
		UserID:       data.UserID,
		FarmName:     data.FarmName,
		Description:  data.Description,
		ProvinceID:   data.ProvinceID,
		DistrictID:   data.DistrictID,
		SectorID:     data.SectorID,
		Latitude:     data.Latitude,
		Longitude:    data.Longitude,
		Phone:        data.Phone,
		Rating:       data.Rating,
		TotalRatings: data.TotalRatings,
		RatingSum:    data.RatingSum,
		IsActive:     data.IsActive,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
