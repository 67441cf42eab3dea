package notifications

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mrz1836/postmark"

	"github.com/you/healthportal/domain"
)

const resetSubject = "Password Reset Code"

// resetBody mirrors the portal's transactional reset email.
func resetBody(code string, ttl time.Duration) string {
	return fmt.Sprintf(`<h1>Password Reset Request</h1>
<p>You have requested to reset your password. Use the following code to reset your password:</p>
<h2 style="color: #4F46E5; font-size: 24px; letter-spacing: 2px;">%s</h2>
<p>This code will expire in %d minutes.</p>
<p>If you didn't request this, please ignore this email.</p>`, code, int(ttl.Minutes()))
}

// EmailServiceImpl implements domain.NotificationService over Postmark.
// Without a server token it degrades to writing emails to a local directory,
// which keeps the reset flow usable in development.
type EmailServiceImpl struct {
	client *postmark.Client
	sender string
	devDir string
}

// NewEmailService creates a new email notification service. serverToken may
// be empty, in which case emails are written to devDir instead of sent.
func NewEmailService(serverToken, accountToken, sender, devDir string) domain.NotificationService {
	svc := &EmailServiceImpl{sender: sender, devDir: devDir}
	if serverToken != "" {
		svc.client = postmark.NewClient(serverToken, accountToken)
	}
	return svc
}

// SendPasswordResetCode implements domain.NotificationService. Delivery
// failures are reported as ErrNotificationFailed without leaking the relay's
// internals to callers.
func (s *EmailServiceImpl) SendPasswordResetCode(ctx context.Context, to, code string, ttl time.Duration) error {
	body := resetBody(code, ttl)

	if s.client == nil {
		return s.writeDevEmail(to, body)
	}

	resp, err := s.client.SendEmail(ctx, postmark.Email{
		From:     s.sender,
		To:       to,
		Subject:  resetSubject,
		HTMLBody: body,
		Tag:      "password-reset",
	})
	if err != nil {
		log.Printf("email: send to %s failed: %v", to, err)
		return domain.ErrNotificationFailed
	}
	if resp.ErrorCode > 0 {
		log.Printf("email: postmark error %d sending to %s: %s", resp.ErrorCode, to, resp.Message)
		return domain.ErrNotificationFailed
	}
	return nil
}

// writeDevEmail saves the email to disk the way a local relay would.
func (s *EmailServiceImpl) writeDevEmail(to, body string) error {
	if err := os.MkdirAll(s.devDir, 0o755); err != nil {
		return domain.ErrNotificationFailed
	}
	name := fmt.Sprintf("%s_password-reset.html", time.Now().Format("2006_01_02_150405.000"))
	path := filepath.Join(s.devDir, name)
	content := fmt.Sprintf("<!-- to: %s -->\n%s", to, body)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return domain.ErrNotificationFailed
	}
	log.Printf("email: dev mode, wrote reset email for %s to %s", to, path)
	return nil
}
