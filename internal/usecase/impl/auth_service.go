// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "agriconnect/internal/delivery/context"
	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/repository"
	"agriconnect/internal/domain/service"
	"agriconnect/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	oauth        service.OAuthAuthService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	OAuth        service.OAuthAuthService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		oauth:        params.OAuth,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup opens a customer or farmer account and logs it in.
func (srv *authService) Signup(ctx context.Context, input usecase.SignupInput) (*usecase.AuthOutput, error) {
	role := input.Role
	if role == "" {
		role = entity.RoleCustomer
	}
	if !role.IsSelfService() {
		return nil, domainerrors.NewValidationError("user type must be customer or farmer, got %q", role)
	}

	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, domainerrors.NewValidationError("email is required")
	}
	if len(input.Password) < service.MinPasswordLength {
		return nil, domainerrors.NewValidationError("password must be at least %d characters", service.MinPasswordLength)
	}
	if len(input.Password) > service.MaxPasswordLength {
		return nil, domainerrors.NewValidationError("password must be at most %d bytes", service.MaxPasswordLength)
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	user := &entity.User{
		ID:           uuid.New(),
		Email:        email,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Role:         role,
		PasswordHash: hash,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		existing, err := userRepo.Search(ctx, entity.UserFilter{Email: email})
		if err != nil {
			return errors.Wrap(err, "failed to look up email")
		}
		if len(existing) > 0 {
			return domainerrors.ErrUserAlreadyExists
		}

		return userRepo.Create(ctx, user)
	})
	if err != nil {
		srv.log(ctx).Warn("Signup failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to register user")
	}

	srv.log(ctx).Info("User signed up", slog.Any("userID", user.ID), slog.Any("role", user.Role))

	return srv.issue(user)
}

// Login verifies the password and that the requested user type matches the account.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	users, err := srv.userRepo.Search(ctx, entity.UserFilter{Email: strings.TrimSpace(input.Email)})
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	for _, user := range users {
		if input.Role != "" && user.Role != input.Role {
			continue
		}
		if user.PasswordHash == "" || !srv.hasher.Check(input.Password, user.PasswordHash) {
			break
		}

		return srv.issue(user)
	}

	srv.log(ctx).Debug("Rejected login", slog.String("email", input.Email))

	return nil, domainerrors.ErrInvalidCredentials
}

// externalUserNamespace derives stable account ids from provider subjects.
//
//nolint:gochecknoglobals
var externalUserNamespace = uuid.MustParse("5b0c3c1e-6f1a-4d55-9c43-7d2f0a1e8b64")

// GoogleLogin resolves a Google identity to an account. The account is found by the id
// derived from the Google subject, then by email; on first login it is created without
// a password. Name and picture only fill fields the user has not set.
func (srv *authService) GoogleLogin(ctx context.Context, input usecase.GoogleLoginInput) (*usecase.AuthOutput, error) {
	role := input.Role
	if role == "" {
		role = entity.RoleCustomer
	}
	if !role.IsSelfService() {
		return nil, domainerrors.NewValidationError("user type must be customer or farmer, got %q", role)
	}
	if srv.oauth == nil {
		return nil, domainerrors.ErrGoogleSignInDisabled
	}

	identity, err := srv.oauth.VerifyIDToken(ctx, input.IDToken)
	if errors.Is(err, domainerrors.ErrGoogleSignInDisabled) {
		return nil, domainerrors.ErrGoogleSignInDisabled
	}
	if err != nil {
		srv.log(ctx).Warn("Rejected Google ID token", slog.Any("error", err))

		return nil, domainerrors.ErrInvalidCredentials
	}

	var user *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		existing, err := srv.findExternalUser(ctx, userRepo, srv.oauth.Provider(), identity)
		if err != nil {
			return err
		}

		user, err = userRepo.Upsert(ctx, externalUserPatch(srv.oauth.Provider(), identity, existing, role))

		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign in with Google")
	}

	srv.log(ctx).Info("User signed in with Google", slog.Any("userID", user.ID), slog.Any("role", user.Role))

	return srv.issue(user)
}

func (srv *authService) findExternalUser(ctx context.Context, userRepo repository.UserRepository, provider string, identity *service.OAuthUser) (*entity.User, error) {
	user, err := userRepo.FindByID(ctx, externalUserID(provider, identity.Subject))
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to find user")
	}

	users, err := userRepo.Search(ctx, entity.UserFilter{Email: identity.Email})
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up email")
	}
	if len(users) > 0 {
		return users[0], nil
	}

	return nil, nil
}

func externalUserID(provider, subject string) uuid.UUID {
	return uuid.NewSHA1(externalUserNamespace, []byte(provider+":"+subject))
}

func externalUserPatch(provider string, identity *service.OAuthUser, existing *entity.User, role entity.Role) *entity.UserUpsert {
	derivedID := externalUserID(provider, identity.Subject)
	if existing == nil {
		return &entity.UserUpsert{
			ID:              derivedID,
			Email:           &identity.Email,
			FirstName:       &identity.GivenName,
			LastName:        &identity.FamilyName,
			Role:            &role,
			ProfileImageURL: &identity.PictureURL,
		}
	}

	patch := &entity.UserUpsert{ID: existing.ID}
	// Accounts created by this flow follow the provider's current email.
	if existing.ID == derivedID && existing.Email != identity.Email {
		patch.Email = &identity.Email
	}
	if existing.FirstName == "" {
		patch.FirstName = &identity.GivenName
	}
	if existing.LastName == "" {
		patch.LastName = &identity.FamilyName
	}
	if existing.ProfileImageURL == "" {
		patch.ProfileImageURL = &identity.PictureURL
	}

	return patch
}

// CurrentUser returns the account behind an access token.
func (srv *authService) CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

func (srv *authService) issue(user *entity.User) (*usecase.AuthOutput, error) {
	token, err := srv.tokenService.GenerateAccessToken(user.ID, user.Role.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	return &usecase.AuthOutput{AccessToken: token, User: user}, nil
}
