// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"agriconnect/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// Search returns the users matching the filter in creation order.
	Search(ctx context.Context, filter entity.UserFilter) ([]*entity.User, error)

	// Create persists a new user. A taken email yields domainerrors.ErrUserAlreadyExists.
	Create(ctx context.Context, user *entity.User) error

	// Upsert merges the provided fields into the stored user, creating it when absent.
	Upsert(ctx context.Context, patch *entity.UserUpsert) (*entity.User, error)

	// Note: users are never hard-deleted.
}
