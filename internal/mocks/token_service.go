package mocks

import (
	"agriconnect/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// TokenService is a mock service.TokenService.
type TokenService struct {
	mock.Mock
}

var _ service.TokenService = (*TokenService)(nil)

func (m *TokenService) GenerateAccessToken(userID uuid.UUID, role string) (string, error) {
	args := m.Called(userID, role)

	return args.String(0), args.Error(1)
}

func (m *TokenService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)

	claims, _ := args.Get(0).(*service.Claims)

	return claims, args.Error(1)
}
