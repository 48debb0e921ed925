// Package google verifies Google Sign-In ID tokens.
package google

import (
	"context"
	"log/slog"
	"strings"

	"agriconnect/config"
	domainerrors "agriconnect/internal/domain/errors"
	"agriconnect/internal/domain/service"

	"github.com/pkg/errors"
	"google.golang.org/api/idtoken"
)

// ProviderGoogle is the provider name reported for Google identities.
const ProviderGoogle = "google"

// payloadValidator matches idtoken.Validate.
type payloadValidator func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// AuthServiceImpl implements service.OAuthAuthService for Google ID tokens.
type AuthServiceImpl struct {
	clientID string
	validate payloadValidator
	logger   *slog.Logger
}

// NewAuthService creates a verifier for tokens issued to googleOAuth.clientId.
// Without a client id every token is refused with ErrGoogleSignInDisabled.
func NewAuthService(cfg *config.Config, logger *slog.Logger) service.OAuthAuthService {
	clientID := ""
	if cfg != nil && cfg.GoogleOAuth != nil {
		clientID = strings.TrimSpace(cfg.GoogleOAuth.ClientID)
	}

	return &AuthServiceImpl{
		clientID: clientID,
		validate: idtoken.Validate,
		logger:   logger,
	}
}

// VerifyIDToken implements service.OAuthAuthService.
func (s *AuthServiceImpl) VerifyIDToken(ctx context.Context, idToken string) (*service.OAuthUser, error) {
	if s.clientID == "" {
		return nil, domainerrors.ErrGoogleSignInDisabled
	}

	payload, err := s.validate(ctx, idToken, s.clientID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid Google ID token")
	}
	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return nil, errors.Errorf("unexpected token issuer %q", payload.Issuer)
	}

	user := &service.OAuthUser{
		Subject:       payload.Subject,
		Email:         stringClaim(payload.Claims, "email"),
		EmailVerified: boolClaim(payload.Claims, "email_verified"),
		GivenName:     stringClaim(payload.Claims, "given_name"),
		FamilyName:    stringClaim(payload.Claims, "family_name"),
		PictureURL:    stringClaim(payload.Claims, "picture"),
	}
	if user.Subject == "" || user.Email == "" {
		return nil, errors.New("token carries no subject or email")
	}
	if !user.EmailVerified {
		return nil, errors.New("email not verified")
	}

	s.logger.Debug("Google ID token verified", slog.String("subject", user.Subject))

	return user, nil
}

// Provider implements service.OAuthAuthService.
func (s *AuthServiceImpl) Provider() string {
	return ProviderGoogle
}

func stringClaim(claims map[string]any, name string) string {
	v, _ := claims[name].(string)

	return v
}

// boolClaim accepts both JSON booleans and the "true" strings some Google tokens carry.
func boolClaim(claims map[string]any, name string) bool {
	switch v := claims[name].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	default:
		return false
	}
}
