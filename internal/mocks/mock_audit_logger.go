package mocks

import (
	"sync"

	"github.com/you/healthportal/domain"
)

// MockAuditLogger implements domain.AuditLogger interface for testing
type MockAuditLogger struct {
	LogEventFunc func(event *domain.AuditEvent)

	mu     sync.Mutex
	events []*domain.AuditEvent
}

// NewMockAuditLogger creates a new MockAuditLogger that records events
func NewMockAuditLogger() *MockAuditLogger {
	return &MockAuditLogger{}
}

// LogEvent records an audit event
func (m *MockAuditLogger) LogEvent(event *domain.AuditEvent) {
	if m.LogEventFunc != nil {
		m.LogEventFunc(event)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

// Events returns the recorded audit events
func (m *MockAuditLogger) Events() []*domain.AuditEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.AuditEvent, len(m.events))
	copy(out, m.events)
	return out
}
