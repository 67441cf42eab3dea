package mocks

import (
	"time"

	"github.com/you/healthportal/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateFunc func(userID, role string) (string, error)
	ValidateFunc func(token string) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// Generate signs a bearer token
func (m *MockTokenService) Generate(userID, role string) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(userID, role)
	}
	return "mock_token_" + userID, nil
}

// Validate verifies a bearer token
func (m *MockTokenService) Validate(token string) (*domain.TokenClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	if token == "" {
		return nil, domain.ErrTokenMalformed
	}
	now := time.Now()
	return &domain.TokenClaims{
		UserID:    "mock_user_id",
		Role:      domain.RolePatient,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(time.Hour).Unix(),
	}, nil
}
