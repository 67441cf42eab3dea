package services

import (
	"context"
	"fmt"
	"time"

	"github.com/you/healthportal/domain"
)

// AppointmentServiceImpl implements domain.AppointmentService
type AppointmentServiceImpl struct {
	apptRepo domain.AppointmentRepository
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(apptRepo domain.AppointmentRepository) domain.AppointmentService {
	return &AppointmentServiceImpl{apptRepo: apptRepo}
}

// Book implements domain.AppointmentService. The date must not be in the
// past (compared at day granularity) and the user may not hold another
// non-cancelled appointment in the same slot.
func (s *AppointmentServiceImpl) Book(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if appt.DoctorName == "" || appt.Specialty == "" || appt.Time == "" ||
		appt.Location == "" || appt.Phone == "" || appt.Date.IsZero() {
		return nil, fmt.Errorf("%w: please provide all required fields", domain.ErrValidation)
	}

	today := time.Now().Truncate(24 * time.Hour)
	if appt.Date.Before(today) {
		return nil, domain.ErrAppointmentInPast
	}

	conflict, err := s.apptRepo.HasConflict(ctx, appt.UserID, appt.Date, appt.Time)
	if err != nil {
		return nil, fmt.Errorf("failed to check appointment conflicts: %w", err)
	}
	if conflict {
		return nil, domain.ErrAppointmentConflict
	}

	appt.Status = domain.AppointmentScheduled
	if err := s.apptRepo.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	return appt, nil
}

// List implements domain.AppointmentService
func (s *AppointmentServiceImpl) List(ctx context.Context, userID string) ([]*domain.Appointment, error) {
	return s.apptRepo.FindByUser(ctx, userID)
}

// UpdateStatus implements domain.AppointmentService
func (s *AppointmentServiceImpl) UpdateStatus(ctx context.Context, id, userID, status string) (*domain.Appointment, error) {
	switch status {
	case domain.AppointmentScheduled, domain.AppointmentCompleted, domain.AppointmentCancelled:
	default:
		return nil, fmt.Errorf("%w: invalid appointment status", domain.ErrValidation)
	}
	return s.apptRepo.UpdateStatus(ctx, id, userID, status)
}
