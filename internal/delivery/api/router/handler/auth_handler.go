package handler

import (
	"log/slog"
	"net/http"

	"agriconnect/internal/delivery/api/response"
	deliverycontext "agriconnect/internal/delivery/context"
	"agriconnect/internal/domain/entity"
	"agriconnect/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	UserUC usecase.UserUsecase
	Logger *slog.Logger
}

// AuthHandler serves account sign-up, login and the current user.
type AuthHandler struct {
	authUC usecase.AuthUsecase
	userUC usecase.UserUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		userUC: params.UserUC,
		logger: params.Logger,
	}
}

// SignupRequest represents the request body for opening an account
type SignupRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"`
	UserType  string `json:"userType" validate:"omitempty,oneof=customer farmer"`
}

// LoginRequest represents the request body for a login
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	UserType string `json:"userType" validate:"omitempty,oneof=customer farmer admin"`
}

// GoogleLoginRequest carries the ID token returned by Google Sign-In
type GoogleLoginRequest struct {
	IDToken  string `json:"idToken" validate:"required"`
	UserType string `json:"userType" validate:"omitempty,oneof=customer farmer"`
}

// UpdateUserRequest represents the editable fields of the current user
type UpdateUserRequest struct {
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	ProfileImageURL *string `json:"profileImageUrl" validate:"omitempty,url"`
}

// AuthResponse is returned by sign-up and login
type AuthResponse struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.authUC.Signup(c.Request().Context(), usecase.SignupInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Role:      entity.Role(req.UserType),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, AuthResponse{Token: output.AccessToken, User: output.User})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.authUC.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     entity.Role(req.UserType),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, AuthResponse{Token: output.AccessToken, User: output.User})
}

// GoogleLogin handles POST /api/auth/google
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	var req GoogleLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.authUC.GoogleLogin(c.Request().Context(), usecase.GoogleLoginInput{
		IDToken: req.IDToken,
		Role:    entity.Role(req.UserType),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, AuthResponse{Token: output.AccessToken, User: output.User})
}

// Logout handles POST /api/auth/logout. Tokens are stateless, the client drops its copy.
func (h *AuthHandler) Logout(c echo.Context) error {
	if userID, _, ok := deliverycontext.GetIdentity(c); ok {
		deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).Info("User logged out", slog.Any("userID", userID))
	}

	return response.OK(c, map[string]string{"message": "Successfully logged out"})
}

// CurrentUser handles GET /api/auth/user
func (h *AuthHandler) CurrentUser(c echo.Context) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}

	user, err := h.authUC.CurrentUser(c.Request().Context(), caller.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, user)
}

// UpdateCurrentUser handles PATCH /api/auth/user
func (h *AuthHandler) UpdateCurrentUser(c echo.Context) error {
	caller, err := actor(c)
	if err != nil {
		return err
	}

	var req UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	// The upsert would create a missing account; only existing users may edit themselves.
	if _, err := h.authUC.CurrentUser(c.Request().Context(), caller.UserID); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.userUC.UpsertUser(c.Request().Context(), &entity.UserUpsert{
		ID:              caller.UserID,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.OK(c, user)
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}
