package mocks

import "context"

// MockResetCodeService implements domain.ResetCodeService interface for testing
type MockResetCodeService struct {
	GenerateFunc func() (string, error)
	CanSendFunc  func(ctx context.Context, email string) (bool, int64, error)
	MarkSentFunc func(ctx context.Context, email string) error

	// MarkSentCalls records the emails MarkSent was invoked with
	MarkSentCalls []string
}

// NewMockResetCodeService creates a new MockResetCodeService with default behaviors
func NewMockResetCodeService() *MockResetCodeService {
	return &MockResetCodeService{}
}

// Generate returns a reset code
func (m *MockResetCodeService) Generate() (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	return "123456", nil
}

// CanSend reports whether the resend window is open
func (m *MockResetCodeService) CanSend(ctx context.Context, email string) (bool, int64, error) {
	if m.CanSendFunc != nil {
		return m.CanSendFunc(ctx, email)
	}
	return true, 0, nil
}

// MarkSent opens a resend window
func (m *MockResetCodeService) MarkSent(ctx context.Context, email string) error {
	m.MarkSentCalls = append(m.MarkSentCalls, email)
	if m.MarkSentFunc != nil {
		return m.MarkSentFunc(ctx, email)
	}
	return nil
}
