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

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).First(&userM, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// Search returns the users matching the filter in creation order.
func (repo *userRepository) Search(ctx context.Context, filter entity.UserFilter) ([]*entity.User, error) {
	query := repo.db.WithContext(ctx).Model(&model.UserModel{})
	if filter.Email != "" {
		query = query.Where("email = ?", filter.Email)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role.String())
	}

	var userMs []model.UserModel
	if err := query.Order("created_at ASC, id ASC").Find(&userMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to search users")
	}

	users := make([]*entity.User, 0, len(userMs))
	for i := range userMs {
		users = append(users, toUserDomain(&userMs[i]))
	}

	return users, nil
}

// Create persists a new user entity.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.Role == "" {
		user.Role = entity.RoleCustomer
	}
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		return translateUserWriteError(err, "failed to create user")
	}

	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Upsert locks the existing row, merges the provided fields and writes the result back.
func (repo *userRepository) Upsert(ctx context.Context, patch *entity.UserUpsert) (*entity.User, error) {
	if patch.ID == uuid.Nil {
		patch.ID = uuid.New()
	}

	var merged *entity.User
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing *entity.User
		var userM model.UserModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&userM, "id = ?", patch.ID).Error
		switch {
		case err == nil:
			existing = toUserDomain(&userM)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return errors.Wrap(err, "failed to load user for upsert")
		}

		merged = patch.Merge(existing, time.Now().UTC())
		if err := tx.Save(fromUserDomain(merged)).Error; err != nil {
			return translateUserWriteError(err, "failed to upsert user")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return merged, nil
}

func translateUserWriteError(err error, details string) error {
	if isUniqueConstraintViolation(err) {
		return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
	}
	if isNotNullConstraintViolation(err) {
		return domainerrors.ErrValidationFailed.WrapMessage("missing required user information")
	}

	return domainerrors.NewDatabaseExecuteError(err, details)
}

// --- Mapper Functions ---

func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	user := &entity.User{
		ID:              data.ID,
		FirstName:       data.FirstName,
		LastName:        data.LastName,
		Role:            entity.Role(data.Role),
		PasswordHash:    data.PasswordHash,
		ProfileImageURL: data.ProfileImageURL,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
	if data.Email != nil {
		user.Email = *data.Email
	}

	return user
}

func fromUserDomain(data *entity.User) *model.UserModel {
	userM := &model.UserModel{
		ID:              data.ID,
		FirstName:       data.FirstName,
		LastName:        data.LastName,
		Role:            data.Role.String(),
		PasswordHash:    data.PasswordHash,
		ProfileImageURL: data.ProfileImageURL,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
	if data.Email != "" {
		email := data.Email
		userM.Email = &email
	}

	return userM
}
