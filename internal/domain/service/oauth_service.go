package service

import "context"

// OAuthUser is the identity an external provider vouches for.
type OAuthUser struct {
	Subject       string // Provider-specific user ID (Google's 'sub' claim)
	Email         string
	EmailVerified bool
	GivenName     string
	FamilyName    string
	PictureURL    string
}

// OAuthAuthService verifies ID tokens sent by clients that completed a provider sign-in.
type OAuthAuthService interface {
	// VerifyIDToken checks signature, audience, issuer and expiry and returns the identity.
	// Tokens without a verified email are rejected.
	VerifyIDToken(ctx context.Context, idToken string) (*OAuthUser, error)

	// Provider names the identity provider, e.g. "google".
	Provider() string
}
