package domain

import "errors"

// Validation errors
var (
	ErrValidation = errors.New("validation failed")
)

// Authentication errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidPassword   = errors.New("invalid password")
)

// Password-reset errors
var (
	ErrNoResetRequested = errors.New("no reset code requested")
	ErrResetCodeExpired = errors.New("reset code has expired")
	ErrResetCodeInvalid = errors.New("invalid reset code")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Infrastructure errors
var (
	ErrNotificationFailed = errors.New("failed to send notification")
	ErrStoreUnavailable   = errors.New("store unavailable")
)

// Record errors
var (
	ErrAppointmentNotFound   = errors.New("appointment not found")
	ErrAppointmentConflict   = errors.New("appointment slot already booked")
	ErrAppointmentInPast     = errors.New("appointment date cannot be in the past")
	ErrPrescriptionNotFound  = errors.New("prescription not found")
	ErrMedicalRecordNotFound = errors.New("medical record not found")
)
