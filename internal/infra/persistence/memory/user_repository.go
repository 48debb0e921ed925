package memory

import (
	"context"

	"agriconnect/internal/domain/entity"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/repository"

	"github.com/google/uuid"
)

type userRepository struct {
	acc access
}

// NewUserRepository creates a user repository backed by the store.
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{acc: store}
}

func (repo *userRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	var found *entity.User
	err := repo.acc.read(func(t *tables) error {
		found = t.userView(id)
		if found == nil {
			return repository.ErrUserNotFound
		}

		return nil
	})

	return found, err
}

func (repo *userRepository) Search(_ context.Context, filter entity.UserFilter) ([]*entity.User, error) {
	var users []*entity.User
	err := repo.acc.read(func(t *tables) error {
		for _, id := range t.userOrder {
			u := t.users[id]
			if filter.Matches(&u) {
				users = append(users, &u)
			}
		}

		return nil
	})

	return users, err
}

func (repo *userRepository) Create(_ context.Context, user *entity.User) error {
	return repo.acc.write(func(t *tables) error {
		if user.Email != "" && t.emailTaken(user.Email, user.ID) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}
		if user.ID == uuid.Nil {
			user.ID = uuid.New()
		}
		if _, exists := t.users[user.ID]; exists {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("user id already exists")
		}
		if user.Role == "" {
			user.Role = entity.RoleCustomer
		}

		now := repo.acc.now()
		user.CreatedAt, user.UpdatedAt = now, now
		t.users[user.ID] = *user
		t.userOrder = append(t.userOrder, user.ID)

		return nil
	})
}

func (repo *userRepository) Upsert(_ context.Context, patch *entity.UserUpsert) (*entity.User, error) {
	var merged *entity.User
	err := repo.acc.write(func(t *tables) error {
		if patch.ID == uuid.Nil {
			patch.ID = uuid.New()
		}
		if patch.Email != nil && *patch.Email != "" && t.emailTaken(*patch.Email, patch.ID) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}

		var existing *entity.User
		if u, ok := t.users[patch.ID]; ok {
			existing = &u
		} else {
			t.userOrder = append(t.userOrder, patch.ID)
		}

		merged = patch.Merge(existing, repo.acc.now())
		t.users[merged.ID] = *merged

		return nil
	})

	return merged, err
}

func (t *tables) emailTaken(email string, owner uuid.UUID) bool {
	for id, u := range t.users {
		if id != owner && u.Email == email {
			return true
		}
	}

	return false
}
