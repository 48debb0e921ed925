// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the identity record shared by customers, farmers and admins.
type User struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"` // Login identifier, unique across accounts.
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Role            Role      `json:"userType"` // Changed only by the explicit "become a farmer" action.
	PasswordHash    string    `json:"-"`        // bcrypt hash; empty for accounts created by external identity flows.
	ProfileImageURL string    `json:"profileImageUrl"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// UserUpsert carries a partial user record. Nil fields keep the stored value.
type UserUpsert struct {
	ID              uuid.UUID
	Email           *string
	FirstName       *string
	LastName        *string
	Role            *Role
	PasswordHash    *string
	ProfileImageURL *string
}

// Merge applies the provided fields on top of existing, which may be nil for a new user.
// The role falls back to customer when it was never set.
func (p *UserUpsert) Merge(existing *User, now time.Time) *User {
	merged := User{ID: p.ID, CreatedAt: now}
	if existing != nil {
		merged = *existing
	}

	if p.Email != nil {
		merged.Email = *p.Email
	}
	if p.FirstName != nil {
		merged.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		merged.LastName = *p.LastName
	}
	if p.Role != nil {
		merged.Role = *p.Role
	}
	if p.PasswordHash != nil {
		merged.PasswordHash = *p.PasswordHash
	}
	if p.ProfileImageURL != nil {
		merged.ProfileImageURL = *p.ProfileImageURL
	}
	if merged.Role == "" {
		merged.Role = RoleCustomer
	}
	merged.UpdatedAt = now

	return &merged
}

// UserFilter narrows a user search. Empty fields are ignored; Email is an exact, case-sensitive match.
type UserFilter struct {
	Email string
	Role  Role
}

// Matches reports whether u satisfies every set field of the filter.
func (f UserFilter) Matches(u *User) bool {
	if f.Email != "" && u.Email != f.Email {
		return false
	}
	if f.Role != "" && u.Role != f.Role {
		return false
	}

	return true
}
