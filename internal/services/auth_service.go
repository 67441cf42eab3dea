package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/you/healthportal/domain"
)

// emailPattern matches the portal's email-shape check.
var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

const (
	maxNameLength     = 50
	minPasswordLength = 6
)

// AuthServiceImpl implements domain.AuthService. It orchestrates the
// credential store, hasher, token issuer, reset-code generator and
// notification sender; hashing happens only here, never as a side effect
// of a repository save.
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	resetSvc    domain.ResetCodeService
	notifySvc   domain.NotificationService
	audit       domain.AuditLogger
	resetTTL    time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	resetSvc domain.ResetCodeService,
	notifySvc domain.NotificationService,
	audit domain.AuditLogger,
	resetTTL time.Duration,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		resetSvc:    resetSvc,
		notifySvc:   notifySvc,
		audit:       audit,
		resetTTL:    resetTTL,
	}
}

// NormalizeEmail applies the canonical form emails are stored in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func validRole(role string) bool {
	switch role {
	case domain.RolePatient, domain.RoleDoctor, domain.RoleAdmin:
		return true
	}
	return false
}

// Register implements domain.AuthService
func (s *AuthServiceImpl) Register(ctx context.Context, name, email, password, role string) (*domain.AuthResult, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)

	if name == "" || len(name) > maxNameLength {
		return nil, fmt.Errorf("%w: name is required and cannot exceed %d characters", domain.ErrValidation, maxNameLength)
	}
	if !validEmail(email) {
		return nil, fmt.Errorf("%w: invalid email address", domain.ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}
	if role == "" {
		role = domain.RolePatient
	}
	if !validRole(role) {
		return nil, fmt.Errorf("%w: invalid role", domain.ErrValidation)
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
	}

	// The store's unique email index is the authority on duplicates, so a
	// concurrent insert with the same email still resolves to one success.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokenSvc.Generate(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.audit.LogEvent(domain.NewAuditEvent(domain.UserRegistrationEvent).WithUser(user.ID).WithEmail(user.Email))

	return &domain.AuthResult{User: user.Public(), Token: token}, nil
}

// Login implements domain.AuthService. The two failure cases carry distinct
// errors on purpose, matching the portal's historical behavior.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	email = NormalizeEmail(email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		s.audit.LogEvent(domain.NewAuditEvent(domain.UserLoginFailureEvent).WithEmail(email).WithError(err))
		return nil, domain.ErrUserNotFound
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		s.audit.LogEvent(domain.NewAuditEvent(domain.UserLoginFailureEvent).WithUser(user.ID).WithEmail(email).WithError(domain.ErrInvalidPassword))
		return nil, domain.ErrInvalidPassword
	}

	token, err := s.tokenSvc.Generate(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.audit.LogEvent(domain.NewAuditEvent(domain.UserLoginEvent).WithUser(user.ID).WithEmail(email))

	return &domain.AuthResult{User: user.Public(), Token: token}, nil
}

// GetProfile implements domain.AuthService
func (s *AuthServiceImpl) GetProfile(ctx context.Context, userID string) (*domain.PublicUser, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// UpdateProfile implements domain.AuthService. Empty fields in the update
// leave the stored values untouched.
func (s *AuthServiceImpl) UpdateProfile(ctx context.Context, userID string, update *domain.ProfileUpdate) (*domain.PublicUser, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Name != "" {
		name := strings.TrimSpace(update.Name)
		if len(name) > maxNameLength {
			return nil, fmt.Errorf("%w: name cannot exceed %d characters", domain.ErrValidation, maxNameLength)
		}
		user.Name = name
	}
	if update.Email != "" {
		email := NormalizeEmail(update.Email)
		if !validEmail(email) {
			return nil, fmt.Errorf("%w: invalid email address", domain.ErrValidation)
		}
		user.Email = email
	}
	if update.FirstName != "" {
		user.FirstName = update.FirstName
	}
	if update.LastName != "" {
		user.LastName = update.LastName
	}
	if update.Phone != "" {
		user.Phone = update.Phone
	}
	if update.Address != "" {
		user.Address = update.Address
	}
	if update.DateOfBirth != "" {
		user.DateOfBirth = update.DateOfBirth
	}
	if update.Gender != "" {
		user.Gender = update.Gender
	}
	if update.PolicyNumber != "" {
		user.PolicyNumber = update.PolicyNumber
	}
	if update.InsuranceProvider != "" {
		user.InsuranceProvider = update.InsuranceProvider
	}
	if update.City != "" {
		user.City = update.City
	}
	if update.State != "" {
		user.State = update.State
	}
	if update.ZipCode != "" {
		user.ZipCode = update.ZipCode
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user.Public(), nil
}

// ChangePassword implements domain.AuthService
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if !s.passwordSvc.Verify(user.PasswordHash, currentPassword) {
		return domain.ErrInvalidPassword
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return err
	}

	s.audit.LogEvent(domain.NewAuditEvent(domain.PasswordChangedEvent).WithUser(user.ID).WithEmail(user.Email))
	return nil
}

// RequestPasswordReset implements domain.AuthService. It acknowledges
// generically whether or not the email resolves, so the endpoint cannot be
// used to enumerate accounts. Only a delivery failure surfaces, and the
// stored code is not rolled back when delivery fails.
func (s *AuthServiceImpl) RequestPasswordReset(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		// Unknown address: same acknowledgment as the happy path.
		return nil
	}

	if ok, wait, err := s.resetSvc.CanSend(ctx, email); err != nil {
		// Throttle store trouble must not take the reset flow down.
		log.Printf("reset: throttle check failed for %s: %v", email, err)
	} else if !ok {
		log.Printf("reset: throttled request for %s, %ds remaining", email, wait)
		return nil
	}

	code, err := s.resetSvc.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate reset code: %w", err)
	}

	expiry := time.Now().Add(s.resetTTL)
	if err := s.userRepo.SetResetCode(ctx, user.ID, code, expiry); err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}

	if err := s.notifySvc.SendPasswordResetCode(ctx, user.Email, code, s.resetTTL); err != nil {
		s.audit.LogEvent(domain.NewAuditEvent(domain.PasswordResetFailureEvent).WithUser(user.ID).WithEmail(email).WithError(err))
		return domain.ErrNotificationFailed
	}

	if err := s.resetSvc.MarkSent(ctx, email); err != nil {
		log.Printf("reset: failed to open resend window for %s: %v", email, err)
	}

	s.audit.LogEvent(domain.NewAuditEvent(domain.PasswordResetRequestedEvent).WithUser(user.ID).WithEmail(email))
	return nil
}

// VerifyResetCode implements domain.AuthService. Expiry is evaluated lazily
// here; the stored code stays in place until a successful verify or a fresh
// request overwrites it. The final write is conditional on the stored code,
// so concurrent verifications resolve to at most one success.
func (s *AuthServiceImpl) VerifyResetCode(ctx context.Context, email, code, newPassword string) error {
	email = NormalizeEmail(email)
	if email == "" || code == "" || newPassword == "" {
		return fmt.Errorf("%w: email, reset code and new password are required", domain.ErrValidation)
	}
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return domain.ErrUserNotFound
	}

	if !user.HasPendingReset() {
		return domain.ErrNoResetRequested
	}

	if user.ResetCodeExpiry.Before(time.Now()) {
		return domain.ErrResetCodeExpired
	}

	if subtle.ConstantTimeCompare([]byte(user.ResetCode), []byte(code)) != 1 {
		s.audit.LogEvent(domain.NewAuditEvent(domain.PasswordResetFailureEvent).WithUser(user.ID).WithEmail(email).WithError(domain.ErrResetCodeInvalid))
		return domain.ErrResetCodeInvalid
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.ConsumeResetCode(ctx, user.ID, code, hashedPassword); err != nil {
		return err
	}

	s.audit.LogEvent(domain.NewAuditEvent(domain.PasswordResetCompletedEvent).WithUser(user.ID).WithEmail(email))
	return nil
}
