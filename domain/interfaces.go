package domain

import (
	"context"
	"time"
)

// UserRepository defines credential-record data access. The store, not the
// service, owns the unique-email and exactly-once reset-code guarantees.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// SetResetCode stores a fresh code and expiry, overwriting any pending one.
	SetResetCode(ctx context.Context, id, code string, expiry time.Time) error
	// ConsumeResetCode atomically replaces the password hash and clears the
	// reset fields, conditioned on the stored code still matching. Returns
	// ErrNoResetRequested when a concurrent caller consumed the code first.
	ConsumeResetCode(ctx context.Context, id, code, passwordHash string) error
}

// AppointmentRepository defines appointment data access.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *Appointment) error
	FindByUser(ctx context.Context, userID string) ([]*Appointment, error)
	FindByID(ctx context.Context, id, userID string) (*Appointment, error)
	// HasConflict reports whether the user already has a non-cancelled
	// appointment at the given date and time.
	HasConflict(ctx context.Context, userID string, date time.Time, timeSlot string) (bool, error)
	UpdateStatus(ctx context.Context, id, userID, status string) (*Appointment, error)
}

// PrescriptionRepository defines prescription data access.
type PrescriptionRepository interface {
	Create(ctx context.Context, p *Prescription) error
	FindByUser(ctx context.Context, userID string) ([]*Prescription, error)
}

// MedicalRecordRepository defines medical-history data access.
type MedicalRecordRepository interface {
	Create(ctx context.Context, rec *MedicalRecord) error
	FindByUser(ctx context.Context, userID string) ([]*MedicalRecord, error)
}

// AuthService defines the credential-lifecycle business logic.
type AuthService interface {
	Register(ctx context.Context, name, email, password, role string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	GetProfile(ctx context.Context, userID string) (*PublicUser, error)
	UpdateProfile(ctx context.Context, userID string, update *ProfileUpdate) (*PublicUser, error)
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
	// RequestPasswordReset acknowledges generically whether or not the email
	// resolves to a record; only NotificationFailed is surfaced.
	RequestPasswordReset(ctx context.Context, email string) error
	VerifyResetCode(ctx context.Context, email, code, newPassword string) error
}

// ResetCodeService generates one-time reset codes and throttles resends.
type ResetCodeService interface {
	Generate() (string, error)
	// CanSend reports whether the resend window for the email is open and,
	// when it is not, how many seconds remain.
	CanSend(ctx context.Context, email string) (bool, int64, error)
	// MarkSent opens a new resend window for the email.
	MarkSent(ctx context.Context, email string) error
}

// PasswordService defines one-way password hashing.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService signs and verifies bearer tokens.
type TokenService interface {
	Generate(userID, role string) (string, error)
	Validate(token string) (*TokenClaims, error)
}

// NotificationService delivers reset codes to the user's email address.
type NotificationService interface {
	SendPasswordResetCode(ctx context.Context, to, code string, ttl time.Duration) error
}

// AppointmentService defines appointment booking logic.
type AppointmentService interface {
	Book(ctx context.Context, appt *Appointment) (*Appointment, error)
	List(ctx context.Context, userID string) ([]*Appointment, error)
	UpdateStatus(ctx context.Context, id, userID, status string) (*Appointment, error)
}

// PrescriptionService defines prescription tracking logic.
type PrescriptionService interface {
	Create(ctx context.Context, p *Prescription) (*Prescription, error)
	List(ctx context.Context, userID string) ([]*Prescription, error)
}

// MedicalRecordService defines medical-history logic.
type MedicalRecordService interface {
	Create(ctx context.Context, rec *MedicalRecord) (*MedicalRecord, error)
	List(ctx context.Context, userID string) ([]*MedicalRecord, error)
}
