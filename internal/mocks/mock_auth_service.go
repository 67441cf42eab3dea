package mocks

import (
	"context"

	"github.com/you/healthportal/domain"
)

// MockAuthService implements domain.AuthService interface for testing
type MockAuthService struct {
	RegisterFunc             func(ctx context.Context, name, email, password, role string) (*domain.AuthResult, error)
	LoginFunc                func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	GetProfileFunc           func(ctx context.Context, userID string) (*domain.PublicUser, error)
	UpdateProfileFunc        func(ctx context.Context, userID string, update *domain.ProfileUpdate) (*domain.PublicUser, error)
	ChangePasswordFunc       func(ctx context.Context, userID, currentPassword, newPassword string) error
	RequestPasswordResetFunc func(ctx context.Context, email string) error
	VerifyResetCodeFunc      func(ctx context.Context, email, code, newPassword string) error
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Register creates a new account
func (m *MockAuthService) Register(ctx context.Context, name, email, password, role string) (*domain.AuthResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, name, email, password, role)
	}
	return &domain.AuthResult{
		User:  &domain.PublicUser{ID: "mock_user_id", Name: name, Email: email, Role: domain.RolePatient},
		Token: "mock_token",
	}, nil
}

// Login authenticates a user
func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return &domain.AuthResult{
		User:  &domain.PublicUser{ID: "mock_user_id", Name: "Mock User", Email: email, Role: domain.RolePatient},
		Token: "mock_token",
	}, nil
}

// GetProfile returns the user's profile
func (m *MockAuthService) GetProfile(ctx context.Context, userID string) (*domain.PublicUser, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, userID)
	}
	return &domain.PublicUser{ID: userID, Name: "Mock User", Email: "mock@example.com", Role: domain.RolePatient}, nil
}

// UpdateProfile applies profile changes
func (m *MockAuthService) UpdateProfile(ctx context.Context, userID string, update *domain.ProfileUpdate) (*domain.PublicUser, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, userID, update)
	}
	return &domain.PublicUser{ID: userID, Name: update.Name, Email: update.Email, Role: domain.RolePatient}, nil
}

// ChangePassword rotates the password
func (m *MockAuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, userID, currentPassword, newPassword)
	}
	return nil
}

// RequestPasswordReset starts a reset flow
func (m *MockAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	if m.RequestPasswordResetFunc != nil {
		return m.RequestPasswordResetFunc(ctx, email)
	}
	return nil
}

// VerifyResetCode completes a reset flow
func (m *MockAuthService) VerifyResetCode(ctx context.Context, email, code, newPassword string) error {
	if m.VerifyResetCodeFunc != nil {
		return m.VerifyResetCodeFunc(ctx, email, code, newPassword)
	}
	return nil
}
