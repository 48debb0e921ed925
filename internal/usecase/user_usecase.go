// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"agriconnect/internal/domain/entity"

	"github.com/google/uuid"
)

// Actor is the authenticated identity a request runs as.
type Actor struct {
	UserID uuid.UUID
	Role   entity.Role
}

// IsAdmin reports whether the actor is a back-office operator.
func (a Actor) IsAdmin() bool {
	return a.Role == entity.RoleAdmin
}

// --- Input DTOs ---

// SignupInput defines the data required to open an account.
type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      entity.Role // customer or farmer; empty means customer
}

// LoginInput defines the data required for a user to log in.
// Role must match the role stored on the account.
type LoginInput struct {
	Email    string
	Password string
	Role     entity.Role
}

// GoogleLoginInput carries the ID token from a completed Google Sign-In.
// Role applies only when the login creates the account.
type GoogleLoginInput struct {
	IDToken string
	Role    entity.Role
}

// --- Output DTOs ---

// AuthOutput returns the access token issued for the account.
type AuthOutput struct {
	AccessToken string
	User        *entity.User
}

// AuthUsecase defines account sign-up, login and identity resolution.
type AuthUsecase interface {
	Signup(ctx context.Context, input SignupInput) (*AuthOutput, error)
	Login(ctx context.Context, input LoginInput) (*AuthOutput, error)
	// GoogleLogin logs in with a Google identity, creating the account on first login.
	GoogleLogin(ctx context.Context, input GoogleLoginInput) (*AuthOutput, error)
	CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}

// UserUsecase is the user directory.
type UserUsecase interface {
	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// UpsertUser merges the provided fields into the stored user, creating it when absent.
	UpsertUser(ctx context.Context, patch *entity.UserUpsert) (*entity.User, error)
	SearchUsers(ctx context.Context, filter entity.UserFilter) ([]*entity.User, error)
}
