// Package service defines the ports for stateless capabilities the use cases rely on:
// hashing, tokens, QR images, event publishing and the insight strategies.
package service

// Password bounds for account signup. bcrypt ignores everything past 72 bytes, so
// longer passwords are refused instead of being silently truncated.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

// PasswordHasher hashes account passwords at signup and checks them at login.
type PasswordHasher interface {
	Hash(password string) (string, error)

	// Check reports whether password matches hash. Accounts created by seeding or
	// an upsert without a password have an empty hash and never match.
	Check(password, hash string) bool
}
