package mocks

import (
	"context"
	"time"
)

// SentCode records one delivered reset code for assertions
type SentCode struct {
	To   string
	Code string
	TTL  time.Duration
}

// MockNotificationService implements domain.NotificationService interface for testing
type MockNotificationService struct {
	SendPasswordResetCodeFunc func(ctx context.Context, to, code string, ttl time.Duration) error

	// Sent records every successful default-behavior delivery
	Sent []SentCode
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendPasswordResetCode delivers a reset code
func (m *MockNotificationService) SendPasswordResetCode(ctx context.Context, to, code string, ttl time.Duration) error {
	if m.SendPasswordResetCodeFunc != nil {
		return m.SendPasswordResetCodeFunc(ctx, to, code, ttl)
	}
	m.Sent = append(m.Sent, SentCode{To: to, Code: code, TTL: ttl})
	return nil
}
