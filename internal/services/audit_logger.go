package services

import (
	"log"
	"time"

	"github.com/you/healthportal/domain"
)

// LogAuditLogger implements domain.AuditLogger on the standard logger,
// one parseable line per event.
type LogAuditLogger struct{}

// NewAuditLogger creates a log-backed audit logger
func NewAuditLogger() domain.AuditLogger {
	return &LogAuditLogger{}
}

// LogEvent implements domain.AuditLogger
func (l *LogAuditLogger) LogEvent(event *domain.AuditEvent) {
	if !event.Success {
		log.Printf("%s: user_id=%s email=%s success=false error=%q timestamp=%s",
			event.EventType, event.UserID, event.Email, event.ErrorMsg,
			event.Timestamp.Format(time.RFC3339))
		return
	}
	log.Printf("%s: user_id=%s email=%s success=true timestamp=%s",
		event.EventType, event.UserID, event.Email,
		event.Timestamp.Format(time.RFC3339))
}
