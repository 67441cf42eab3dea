package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/you/healthportal/domain"
	"github.com/you/healthportal/internal/mocks"
)

func newTestAuthService(
	userRepo *mocks.MockUserRepository,
	passwordSvc *mocks.MockPasswordService,
	tokenSvc *mocks.MockTokenService,
	resetSvc *mocks.MockResetCodeService,
	notifySvc *mocks.MockNotificationService,
) domain.AuthService {
	return NewAuthService(userRepo, passwordSvc, tokenSvc, resetSvc, notifySvc, mocks.NewMockAuditLogger(), 15*time.Minute)
}

func seedUser(userRepo *mocks.MockUserRepository) *domain.User {
	user := &domain.User{
		ID:           "user_1",
		Name:         "Jane Doe",
		Email:        "jane@example.com",
		PasswordHash: "hashed_oldpassword",
		Role:         domain.RolePatient,
	}
	userRepo.Seed(user)
	return user
}

func TestAuthServiceImpl_Register(t *testing.T) {
	tests := []struct {
		name          string
		userName      string
		email         string
		password      string
		role          string
		setupMocks    func(*mocks.MockUserRepository, *mocks.MockPasswordService, *mocks.MockTokenService)
		expectedError error
		validate      func(t *testing.T, result *domain.AuthResult)
	}{
		{
			name:     "successful registration",
			userName: "Jane Doe",
			email:    "Jane@Example.com",
			password: "securepassword",
			setupMocks: func(userRepo *mocks.MockUserRepository, passwordSvc *mocks.MockPasswordService, tokenSvc *mocks.MockTokenService) {
			},
			expectedError: nil,
			validate: func(t *testing.T, result *domain.AuthResult) {
				if result == nil {
					t.Fatal("result is nil")
				}
				if result.User.Email != "jane@example.com" {
					t.Errorf("expected normalized email jane@example.com, got %s", result.User.Email)
				}
				if result.User.Role != domain.RolePatient {
					t.Errorf("expected default role %s, got %s", domain.RolePatient, result.User.Role)
				}
				if result.Token == "" {
					t.Error("expected a token")
				}
			},
		},
		{
			name:     "duplicate email",
			userName: "Jane Doe",
			email:    "jane@example.com",
			password: "securepassword",
			setupMocks: func(userRepo *mocks.MockUserRepository, passwordSvc *mocks.MockPasswordService, tokenSvc *mocks.MockTokenService) {
				seedUser(userRepo)
			},
			expectedError: domain.ErrUserAlreadyExists,
		},
		{
			name:     "concurrent duplicate surfaces store error",
			userName: "Jane Doe",
			email:    "jane@example.com",
			password: "securepassword",
			setupMocks: func(userRepo *mocks.MockUserRepository, passwordSvc *mocks.MockPasswordService, tokenSvc *mocks.MockTokenService) {
				// The store is the authority on uniqueness; the service does
				// no pre-check, so the index violation is what the caller sees.
				userRepo.CreateFunc = func(ctx context.Context, user *domain.User) error {
					return domain.ErrUserAlreadyExists
				}
			},
			expectedError: domain.ErrUserAlreadyExists,
		},
		{
			name:          "missing name",
			userName:      "   ",
			email:         "jane@example.com",
			password:      "securepassword",
			setupMocks:    func(*mocks.MockUserRepository, *mocks.MockPasswordService, *mocks.MockTokenService) {},
			expectedError: domain.ErrValidation,
		},
		{
			name:          "name too long",
			userName:      strings.Repeat("a", 51),
			email:         "jane@example.com",
			password:      "securepassword",
			setupMocks:    func(*mocks.MockUserRepository, *mocks.MockPasswordService, *mocks.MockTokenService) {},
			expectedError: domain.ErrValidation,
		},
		{
			name:          "malformed email",
			userName:      "Jane Doe",
			email:         "not-an-email",
			password:      "securepassword",
			setupMocks:    func(*mocks.MockUserRepository, *mocks.MockPasswordService, *mocks.MockTokenService) {},
			expectedError: domain.ErrValidation,
		},
		{
			name:          "short password",
			userName:      "Jane Doe",
			email:         "jane@example.com",
			password:      "12345",
			setupMocks:    func(*mocks.MockUserRepository, *mocks.MockPasswordService, *mocks.MockTokenService) {},
			expectedError: domain.ErrValidation,
		},
		{
			name:          "unknown role",
			userName:      "Jane Doe",
			email:         "jane@example.com",
			password:      "securepassword",
			role:          "superuser",
			setupMocks:    func(*mocks.MockUserRepository, *mocks.MockPasswordService, *mocks.MockTokenService) {},
			expectedError: domain.ErrValidation,
		},
		{
			name:     "hashing failure",
			userName: "Jane Doe",
			email:    "jane@example.com",
			password: "securepassword",
			setupMocks: func(userRepo *mocks.MockUserRepository, passwordSvc *mocks.MockPasswordService, tokenSvc *mocks.MockTokenService) {
				passwordSvc.HashFunc = func(password string) (string, error) {
					return "", errors.New("hashing failed")
				}
			},
			expectedError: errors.New("failed to hash password: hashing failed"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			passwordSvc := mocks.NewMockPasswordService()
			tokenSvc := mocks.NewMockTokenService()
			tt.setupMocks(userRepo, passwordSvc, tokenSvc)

			svc := newTestAuthService(userRepo, passwordSvc, tokenSvc, mocks.NewMockResetCodeService(), mocks.NewMockNotificationService())

			result, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password, tt.role)

			if tt.expectedError != nil {
				if err == nil {
					t.Fatalf("expected error %v, got nil", tt.expectedError)
				}
				if !errors.Is(err, tt.expectedError) && err.Error() != tt.expectedError.Error() {
					t.Errorf("expected error %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, result)
			}
		})
	}
}

func TestAuthServiceImpl_Login(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMocks    func(*mocks.MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "jane@example.com",
			password: "oldpassword",
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				seedUser(userRepo)
			},
		},
		{
			name:     "email case and whitespace normalized",
			email:    "  JANE@example.com ",
			password: "oldpassword",
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				seedUser(userRepo)
			},
		},
		{
			name:          "unknown email",
			email:         "nobody@example.com",
			password:      "whatever",
			setupMocks:    func(*mocks.MockUserRepository) {},
			expectedError: domain.ErrUserNotFound,
		},
		{
			name:     "wrong password",
			email:    "jane@example.com",
			password: "wrongpassword",
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				seedUser(userRepo)
			},
			expectedError: domain.ErrInvalidPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			tt.setupMocks(userRepo)

			svc := newTestAuthService(userRepo, mocks.NewMockPasswordService(), mocks.NewMockTokenService(), mocks.NewMockResetCodeService(), mocks.NewMockNotificationService())

			result, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("expected error %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Token == "" {
				t.Error("expected a token")
			}
			if result.User.Email != "jane@example.com" {
				t.Errorf("expected user jane@example.com, got %s", result.User.Email)
			}
		})
	}
}

func TestAuthServiceImpl_LoginFailuresAreDistinct(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	seedUser(userRepo)
	svc := newTestAuthService(userRepo, mocks.NewMockPasswordService(), mocks.NewMockTokenService(), mocks.NewMockResetCodeService(), mocks.NewMockNotificationService())

	_, unknownErr := svc.Login(context.Background(), "nobody@example.com", "whatever")
	_, wrongPwErr := svc.Login(context.Background(), "jane@example.com", "wrongpassword")

	if !errors.Is(unknownErr, domain.ErrUserNotFound) {
		t.Errorf("unknown email: expected ErrUserNotFound, got %v", unknownErr)
	}
	if !errors.Is(wrongPwErr, domain.ErrInvalidPassword) {
		t.Errorf("wrong password: expected ErrInvalidPassword, got %v", wrongPwErr)
	}
}

func TestAuthServiceImpl_ChangePassword(t *testing.T) {
	tests := []struct {
		name            string
		currentPassword string
		newPassword     string
		expectedError   error
	}{
		{
			name:            "successful change",
			currentPassword: "oldpassword",
			newPassword:     "newpassword",
		},
		{
			name:            "wrong current password",
			currentPassword: "wrongpassword",
			newPassword:     "newpassword",
			expectedError:   domain.ErrInvalidPassword,
		},
		{
			name:            "short new password",
			currentPassword: "oldpassword",
			newPassword:     "tiny",
			expectedError:   domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			user := seedUser(userRepo)
			svc := newTestAuthService(userRepo, mocks.NewMockPasswordService(), mocks.NewMockTokenService(), mocks.NewMockResetCodeService(), mocks.NewMockNotificationService())

			err := svc.ChangePassword(context.Background(), user.ID, tt.currentPassword, tt.newPassword)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("expected error %v, got %v", tt.expectedError, err)
				}
				if user.PasswordHash != "hashed_oldpassword" {
					t.Error("stored hash changed on a failed attempt")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.PasswordHash != "hashed_newpassword" {
				t.Errorf("expected updated hash, got %s", user.PasswordHash)
			}
		})
	}
}

func TestAuthServiceImpl_UpdateProfile(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	user := seedUser(userRepo)
	user.Phone = "555-0100"
	svc := newTestAuthService(userRepo, mocks.NewMockPasswordService(), mocks.NewMockTokenService(), mocks.NewMockResetCodeService(), mocks.NewMockNotificationService())

	updated, err := svc.UpdateProfile(context.Background(), user.ID, &domain.ProfileUpdate{
		FirstName: "Jane",
		City:      "Springfield",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.FirstName != "Jane" || updated.City != "Springfield" {
		t.Errorf("expected updated fields, got %+v", updated)
	}
	// Fields absent from the update stay intact.
	if updated.Phone != "555-0100" {
		t.Errorf("expected phone to be untouched, got %q", updated.Phone)
	}

	if _, err := svc.UpdateProfile(context.Background(), user.ID, &domain.ProfileUpdate{Email: "bad email"}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for malformed email, got %v", err)
	}
}

func TestAuthServiceImpl_RequestPasswordReset(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		setupMocks    func(*mocks.MockUserRepository, *mocks.MockResetCodeService, *mocks.MockNotificationService)
		expectedError error
		validate      func(t *testing.T, userRepo *mocks.MockUserRepository, resetSvc *mocks.MockResetCodeService, notifySvc *mocks.MockNotificationService)
	}{
		{
			name:  "happy path stores and sends a code",
			email: "jane@example.com",
			setupMocks: func(userRepo *mocks.MockUserRepository, resetSvc *mocks.MockResetCodeService, notifySvc *mocks.MockNotificationService) {
				seedUser(userRepo)
			},
			validate: func(t *testing.T, userRepo *mocks.MockUserRepository, resetSvc *mocks.MockResetCodeService, notifySvc *mocks.MockNotificationService) {
				user, _ := userRepo.FindByEmail(context.Background(), "jane@example.com")
				if !user.HasPendingReset() {
					t.Error("expected a pending reset on the user")
				}
				if len(notifySvc.Sent) != 1 {
					t.Fatalf("expected 1 sent code, got %d", len(notifySvc.Sent))
				}
				if notifySvc.Sent[0].Code != user.ResetCode {
					t.Error("sent code does not match stored code")
				}
				if len(resetSvc.MarkSentCalls) != 1 {
					t.Errorf("expected resend window opened once, got %d", len(resetSvc.MarkSentCalls))
				}
			},
		},
		{
			name:  "new request overwrites a pending code",
			email: "jane@example.com",
			setupMocks: func(userRepo *mocks.MockUserRepository, resetSvc *mocks.MockResetCodeService, notifySvc *mocks.MockNotificationService) {
				user := seedUser(userRepo)
				user.ResetCode = "111111"
				user.ResetCodeExpiry = time.Now().Add(5 * time.Minute)
				resetSvc.GenerateFunc = func() (string, error) { return "222222", nil }
			},
			validate: func(t *testing.T, userRepo *mocks.MockUserRepository, resetSvc *mocks.MockResetCodeService, notifySvc *mocks.MockNotificationService) {
				user, _ := userRepo.FindByEmail(context.Background(), "jane@example.com")
				if user.ResetCode != "222222" {
					t.Errorf("expected fresh code to replace the pending one, got %s", user.ResetCode)
				}
			},
		},
		{
			name:       "unknown email acknowledges without sending",
			email:      "nobody@example.com",
			setupMocks: func(*mocks.MockUserRepository, *mocks.MockResetCodeService, *mocks.MockNotificationService) {},
			validate: func(t *testing.T, userRepo *mocks.MockUserRepository, resetSvc *mocks.MockResetCodeService, notifySvc *mocks.MockNotificationService) {
				if len(notifySvc.Sent) != 0 {
					t.Errorf("expected no delivery for unknown email, got %d", len(notifySvc.Sent))
				}
			},
		},
		{
			name:  "throttled request acknowledges without sending",
			email: "jane@example.com",
			setupMocks: func(userRepo *mocks.MockUserRepository, resetSvc *mocks.MockResetCodeService, notifySvc *mocks.MockNotificationService) {
				seedUser(userRepo)
				resetSvc.CanSendFunc = func(ctx context.Context, email string) (bool, int64, error) {
					return false, 42, nil
				}
			},
			validate: func(t *testing.T, userRepo *mocks.MockUserRepository, resetSvc *mocks.MockResetCodeService, notifySvc *mocks.MockNotificationService) {
				if len(notifySvc.Sent) != 0 {
					t.Errorf("expected no delivery while throttled, got %d", len(notifySvc.Sent))
				}
				user, _ := userRepo.FindByEmail(context.Background(), "jane@example.com")
				if user.HasPendingReset() {
					t.Error("throttled request must not overwrite reset state")
				}
			},
		},
		{
			name:  "throttle store failure does not block the flow",
			email: "jane@example.com",
			setupMocks: func(userRepo *mocks.MockUserRepository, resetSvc *mocks.MockResetCodeService, notifySvc *mocks.MockNotificationService) {
				seedUser(userRepo)
				resetSvc.CanSendFunc = func(ctx context.Context, email string) (bool, int64, error) {
					return false, 0, errors.New("redis down")
				}
			},
			validate: func(t *testing.T, userRepo *mocks.MockUserRepository, resetSvc *mocks.MockResetCodeService, notifySvc *mocks.MockNotificationService) {
				if len(notifySvc.Sent) != 1 {
					t.Errorf("expected delivery despite throttle store failure, got %d", len(notifySvc.Sent))
				}
			},
		},
		{
			name:  "delivery failure surfaces and keeps the stored code",
			email: "jane@example.com",
			setupMocks: func(userRepo *mocks.MockUserRepository, resetSvc *mocks.MockResetCodeService, notifySvc *mocks.MockNotificationService) {
				seedUser(userRepo)
				notifySvc.SendPasswordResetCodeFunc = func(ctx context.Context, to, code string, ttl time.Duration) error {
					return errors.New("smtp unreachable")
				}
			},
			expectedError: domain.ErrNotificationFailed,
			validate: func(t *testing.T, userRepo *mocks.MockUserRepository, resetSvc *mocks.MockResetCodeService, notifySvc *mocks.MockNotificationService) {
				user, _ := userRepo.FindByEmail(context.Background(), "jane@example.com")
				if !user.HasPendingReset() {
					t.Error("stored code must not be rolled back on delivery failure")
				}
				// Failed deliveries leave the resend window closed so the user
				// can retry immediately.
				if len(resetSvc.MarkSentCalls) != 0 {
					t.Errorf("expected no resend window after failed delivery, got %d", len(resetSvc.MarkSentCalls))
				}
			},
		},
		{
			name:          "empty email is rejected",
			email:         "   ",
			setupMocks:    func(*mocks.MockUserRepository, *mocks.MockResetCodeService, *mocks.MockNotificationService) {},
			expectedError: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			resetSvc := mocks.NewMockResetCodeService()
			notifySvc := mocks.NewMockNotificationService()
			tt.setupMocks(userRepo, resetSvc, notifySvc)

			svc := newTestAuthService(userRepo, mocks.NewMockPasswordService(), mocks.NewMockTokenService(), resetSvc, notifySvc)

			err := svc.RequestPasswordReset(context.Background(), tt.email)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("expected error %v, got %v", tt.expectedError, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, userRepo, resetSvc, notifySvc)
			}
		})
	}
}

func TestAuthServiceImpl_VerifyResetCode(t *testing.T) {
	pendingUser := func(userRepo *mocks.MockUserRepository, expiry time.Time) *domain.User {
		user := seedUser(userRepo)
		user.ResetCode = "123456"
		user.ResetCodeExpiry = expiry
		return user
	}

	tests := []struct {
		name          string
		email         string
		code          string
		newPassword   string
		setupMocks    func(*mocks.MockUserRepository)
		expectedError error
		validate      func(t *testing.T, userRepo *mocks.MockUserRepository)
	}{
		{
			name:        "successful verify consumes the code",
			email:       "jane@example.com",
			code:        "123456",
			newPassword: "brandnewpw",
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				pendingUser(userRepo, time.Now().Add(10*time.Minute))
			},
			validate: func(t *testing.T, userRepo *mocks.MockUserRepository) {
				user, _ := userRepo.FindByEmail(context.Background(), "jane@example.com")
				if user.PasswordHash != "hashed_brandnewpw" {
					t.Errorf("expected new hash, got %s", user.PasswordHash)
				}
				if user.HasPendingReset() {
					t.Error("expected reset state to be cleared")
				}
			},
		},
		{
			name:        "no reset requested",
			email:       "jane@example.com",
			code:        "123456",
			newPassword: "brandnewpw",
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				seedUser(userRepo)
			},
			expectedError: domain.ErrNoResetRequested,
		},
		{
			name:        "expired code",
			email:       "jane@example.com",
			code:        "123456",
			newPassword: "brandnewpw",
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				pendingUser(userRepo, time.Now().Add(-time.Minute))
			},
			expectedError: domain.ErrResetCodeExpired,
			validate: func(t *testing.T, userRepo *mocks.MockUserRepository) {
				// Expiry is evaluated lazily; the stale state stays until a
				// fresh request overwrites it.
				user, _ := userRepo.FindByEmail(context.Background(), "jane@example.com")
				if !user.HasPendingReset() {
					t.Error("expected expired state to remain stored")
				}
			},
		},
		{
			name:        "wrong code leaves the hash unchanged",
			email:       "jane@example.com",
			code:        "654321",
			newPassword: "brandnewpw",
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				pendingUser(userRepo, time.Now().Add(10*time.Minute))
			},
			expectedError: domain.ErrResetCodeInvalid,
			validate: func(t *testing.T, userRepo *mocks.MockUserRepository) {
				user, _ := userRepo.FindByEmail(context.Background(), "jane@example.com")
				if user.PasswordHash != "hashed_oldpassword" {
					t.Errorf("hash changed on invalid code: %s", user.PasswordHash)
				}
				if user.ResetCode != "123456" {
					t.Error("stored code must survive a failed attempt")
				}
			},
		},
		{
			name:          "unknown email",
			email:         "nobody@example.com",
			code:          "123456",
			newPassword:   "brandnewpw",
			setupMocks:    func(*mocks.MockUserRepository) {},
			expectedError: domain.ErrUserNotFound,
		},
		{
			name:        "short new password",
			email:       "jane@example.com",
			code:        "123456",
			newPassword: "tiny",
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				pendingUser(userRepo, time.Now().Add(10*time.Minute))
			},
			expectedError: domain.ErrValidation,
		},
		{
			name:        "raced-out consume reports no reset requested",
			email:       "jane@example.com",
			code:        "123456",
			newPassword: "brandnewpw",
			setupMocks: func(userRepo *mocks.MockUserRepository) {
				pendingUser(userRepo, time.Now().Add(10*time.Minute))
				// A concurrent caller consumed the code between the read and
				// the conditional write.
				userRepo.ConsumeResetCodeFunc = func(ctx context.Context, id, code, passwordHash string) error {
					return domain.ErrNoResetRequested
				}
			},
			expectedError: domain.ErrNoResetRequested,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := mocks.NewMockUserRepository()
			tt.setupMocks(userRepo)

			svc := newTestAuthService(userRepo, mocks.NewMockPasswordService(), mocks.NewMockTokenService(), mocks.NewMockResetCodeService(), mocks.NewMockNotificationService())

			err := svc.VerifyResetCode(context.Background(), tt.email, tt.code, tt.newPassword)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("expected error %v, got %v", tt.expectedError, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, userRepo)
			}
		})
	}
}

func TestAuthServiceImpl_VerifyResetCodeConcurrentConsume(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	user := seedUser(userRepo)
	user.ResetCode = "123456"
	user.ResetCodeExpiry = time.Now().Add(10 * time.Minute)

	svc := newTestAuthService(userRepo, mocks.NewMockPasswordService(), mocks.NewMockTokenService(), mocks.NewMockResetCodeService(), mocks.NewMockNotificationService())

	results := make(chan error, 2)
	start := make(chan struct{})
	for i := 0; i < 2; i++ {
		go func() {
			<-start
			results <- svc.VerifyResetCode(context.Background(), "jane@example.com", "123456", "brandnewpw")
		}()
	}
	close(start)

	var successes, losses int
	for i := 0; i < 2; i++ {
		err := <-results
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrNoResetRequested):
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if successes != 1 || losses != 1 {
		t.Fatalf("expected exactly one success and one loss, got %d/%d", successes, losses)
	}
	if user.PasswordHash != "hashed_brandnewpw" {
		t.Errorf("expected new hash, got %s", user.PasswordHash)
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Jane@Example.COM ", "jane@example.com"},
		{"plain@example.com", "plain@example.com"},
		{"\tTABS@EXAMPLE.com\n", "tabs@example.com"},
	}
	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEmailPattern(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@example.co",
		"a-b@sub.example.org",
	}
	invalid := []string{
		"",
		"no-at-sign",
		"@example.com",
		"user@",
		"user@example",
		"user@example.toolong",
	}
	for _, email := range valid {
		if !validEmail(email) {
			t.Errorf("expected %q to be valid", email)
		}
	}
	for _, email := range invalid {
		if validEmail(email) {
			t.Errorf("expected %q to be invalid", email)
		}
	}
}

func TestAuthServiceImpl_RegisterTokenFailure(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	tokenSvc := mocks.NewMockTokenService()
	tokenSvc.GenerateFunc = func(userID, role string) (string, error) {
		return "", errors.New("signing failed")
	}
	svc := newTestAuthService(userRepo, mocks.NewMockPasswordService(), tokenSvc, mocks.NewMockResetCodeService(), mocks.NewMockNotificationService())

	_, err := svc.Register(context.Background(), "Jane Doe", "jane@example.com", "securepassword", "")
	want := fmt.Errorf("failed to generate token: %w", errors.New("signing failed"))
	if err == nil || err.Error() != want.Error() {
		t.Fatalf("expected %v, got %v", want, err)
	}
}
