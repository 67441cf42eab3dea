package domain

import "time"

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Authentication events
	UserRegistrationEvent AuditEventType = "USER_REGISTERED"
	UserLoginEvent        AuditEventType = "USER_LOGIN"
	UserLoginFailureEvent AuditEventType = "USER_LOGIN_FAILED"

	// Credential lifecycle events
	PasswordChangedEvent        AuditEventType = "PASSWORD_CHANGED"
	PasswordResetRequestedEvent AuditEventType = "PASSWORD_RESET_REQUESTED"
	PasswordResetCompletedEvent AuditEventType = "PASSWORD_RESET_COMPLETED"
	PasswordResetFailureEvent   AuditEventType = "PASSWORD_RESET_FAILED"
)

// AuditEvent represents a business event that occurred in the system
type AuditEvent struct {
	EventType AuditEventType `json:"event_type"`
	UserID    string         `json:"user_id,omitempty"`
	Email     string         `json:"email,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	ErrorMsg  string         `json:"error_msg,omitempty"`
	Success   bool           `json:"success"`
}

// AuditLogger defines operations for audit logging
type AuditLogger interface {
	LogEvent(event *AuditEvent)
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		Timestamp: time.Now().UTC(),
		Success:   true,
	}
}

// WithError sets error information on the audit event
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithUser sets the user identifier
func (e *AuditEvent) WithUser(userID string) *AuditEvent {
	e.UserID = userID
	return e
}

// WithEmail sets the email field
func (e *AuditEvent) WithEmail(email string) *AuditEvent {
	e.Email = email
	return e
}
