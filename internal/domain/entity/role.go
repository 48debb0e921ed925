// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role a user can have in the marketplace.
type Role string

const (
	// RoleCustomer indicates a buyer. It is the default role for new accounts.
	RoleCustomer Role = "customer"
	// RoleFarmer indicates a user that owns a farmer profile and sells products.
	RoleFarmer Role = "farmer"
	// RoleAdmin indicates a back-office operator.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleFarmer, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsSelfService reports whether the role can be chosen at signup.
func (r Role) IsSelfService() bool {
	return r == RoleCustomer || r == RoleFarmer
}
