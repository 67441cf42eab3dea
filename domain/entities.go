package domain

import "time"

// Roles a credential record may carry. RolePatient is the default.
const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

// User is a credential record: identity, hashed secret, role and any
// in-flight password-reset state, plus the mutable profile fields.
type User struct {
	ID              string
	Name            string
	Email           string
	PasswordHash    string
	Role            string
	ResetCode       string
	ResetCodeExpiry time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Profile fields, independently optional.
	FirstName         string
	LastName          string
	Phone             string
	Address           string
	DateOfBirth       string
	Gender            string
	PolicyNumber      string
	InsuranceProvider string
	City              string
	State             string
	ZipCode           string
}

// HasPendingReset reports whether a reset code is in flight. The code and
// its expiry are set and cleared together, never one without the other.
func (u *User) HasPendingReset() bool {
	return u.ResetCode != "" && !u.ResetCodeExpiry.IsZero()
}

// PublicUser is the subset of a credential record safe to return to
// clients. It never carries the password hash or reset fields.
type PublicUser struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Role              string `json:"role"`
	FirstName         string `json:"firstName,omitempty"`
	LastName          string `json:"lastName,omitempty"`
	Phone             string `json:"phone,omitempty"`
	Address           string `json:"address,omitempty"`
	DateOfBirth       string `json:"dateOfBirth,omitempty"`
	Gender            string `json:"gender,omitempty"`
	PolicyNumber      string `json:"policyNumber,omitempty"`
	InsuranceProvider string `json:"insuranceProvider,omitempty"`
	City              string `json:"city,omitempty"`
	State             string `json:"state,omitempty"`
	ZipCode           string `json:"zipCode,omitempty"`
}

// Public returns the client-safe view of the user.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		Role:              u.Role,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Phone:             u.Phone,
		Address:           u.Address,
		DateOfBirth:       u.DateOfBirth,
		Gender:            u.Gender,
		PolicyNumber:      u.PolicyNumber,
		InsuranceProvider: u.InsuranceProvider,
		City:              u.City,
		State:             u.State,
		ZipCode:           u.ZipCode,
	}
}

// AuthResult represents the outcome of a successful register or login.
type AuthResult struct {
	User  *PublicUser
	Token string
}

// TokenClaims represents the claims carried by a bearer token.
type TokenClaims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// ProfileUpdate carries the mutable profile fields. Empty fields leave the
// stored values untouched.
type ProfileUpdate struct {
	Name              string
	Email             string
	FirstName         string
	LastName          string
	Phone             string
	Address           string
	DateOfBirth       string
	Gender            string
	PolicyNumber      string
	InsuranceProvider string
	City              string
	State             string
	ZipCode           string
}

// Appointment statuses.
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Appointment is a booked visit, always scoped to the owning user.
type Appointment struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	DoctorName string    `json:"doctorName"`
	Specialty  string    `json:"specialty,omitempty"`
	Date       time.Time `json:"date"`
	Time       string    `json:"time"`
	Location   string    `json:"location,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Status     string    `json:"status"`
	Reason     string    `json:"reason,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Prescription statuses.
const (
	PrescriptionActive    = "active"
	PrescriptionCompleted = "completed"
	PrescriptionCancelled = "cancelled"
)

// Medication describes the prescribed drug.
type Medication struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage,omitempty"`
	Frequency    string `json:"frequency,omitempty"`
	Instructions string `json:"instructions,omitempty"`
}

// Prescriber identifies who issued a prescription or provided care.
type Prescriber struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty,omitempty"`
}

// Refills tracks remaining refills on a prescription.
type Refills struct {
	Total     int `json:"total"`
	Remaining int `json:"remaining"`
}

// Pharmacy identifies the dispensing pharmacy.
type Pharmacy struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Prescription is a tracked medication order for a user.
type Prescription struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userId"`
	Medication   Medication `json:"medication"`
	PrescribedBy Prescriber `json:"prescribedBy"`
	StartDate    time.Time  `json:"startDate"`
	EndDate      time.Time  `json:"endDate"`
	Refills      Refills    `json:"refills"`
	Status       string     `json:"status"`
	Pharmacy     Pharmacy   `json:"pharmacy"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// Medical record types.
const (
	RecordVisit       = "visit"
	RecordProcedure   = "procedure"
	RecordTest        = "test"
	RecordVaccination = "vaccination"
)

// Attachment is a document linked to a medical record.
type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type,omitempty"`
}

// MedicalRecord is one entry in a user's medical history.
type MedicalRecord struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	Type        string       `json:"type"`
	Date        time.Time    `json:"date"`
	Provider    Prescriber   `json:"provider"`
	Description string       `json:"description,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}
