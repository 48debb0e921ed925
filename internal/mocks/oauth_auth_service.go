package mocks

import (
	"context"

	"agriconnect/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// OAuthAuthService is a mock service.OAuthAuthService.
type OAuthAuthService struct {
	mock.Mock
}

var _ service.OAuthAuthService = (*OAuthAuthService)(nil)

func (m *OAuthAuthService) VerifyIDToken(ctx context.Context, idToken string) (*service.OAuthUser, error) {
	args := m.Called(ctx, idToken)

	user, _ := args.Get(0).(*service.OAuthUser)

	return user, args.Error(1)
}

func (m *OAuthAuthService) Provider() string {
	args := m.Called()

	return args.String(0)
}
