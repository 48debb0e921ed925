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

// userService implements the UserUsecase interface.
type userService struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Logger   *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo: params.UserRepo,
		logger:   params.Logger,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *userService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// UpsertUser only overwrites the provided fields. A new user without a role becomes a customer.
func (srv *userService) UpsertUser(ctx context.Context, patch *entity.UserUpsert) (*entity.User, error) {
	if patch.Role != nil && !patch.Role.IsValid() {
		return nil, domainerrors.NewValidationError("unknown user type %q", *patch.Role)
	}

	user, err := srv.userRepo.Upsert(ctx, patch)
	if err != nil {
		srv.log(ctx).Error("Failed to upsert user", slog.Any("userID", patch.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to upsert user")
	}

	return user, nil
}

func (srv *userService) SearchUsers(ctx context.Context, filter entity.UserFilter) ([]*entity.User, error) {
	if filter.Role != "" && !filter.Role.IsValid() {
		return nil, domainerrors.NewValidationError("unknown user type %q", filter.Role)
	}

	users, err := srv.userRepo.Search(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search users")
	}

	return users, nil
}
