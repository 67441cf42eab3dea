package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/you/healthportal/domain"
)

// MockAppointmentRepository implements domain.AppointmentRepository interface for testing
type MockAppointmentRepository struct {
	CreateFunc       func(ctx context.Context, appt *domain.Appointment) error
	FindByUserFunc   func(ctx context.Context, userID string) ([]*domain.Appointment, error)
	FindByIDFunc     func(ctx context.Context, id, userID string) (*domain.Appointment, error)
	HasConflictFunc  func(ctx context.Context, userID string, date time.Time, timeSlot string) (bool, error)
	UpdateStatusFunc func(ctx context.Context, id, userID, status string) (*domain.Appointment, error)

	mu    sync.Mutex
	appts []*domain.Appointment
}

// NewMockAppointmentRepository creates a new MockAppointmentRepository with an
// in-memory default store
func NewMockAppointmentRepository() *MockAppointmentRepository {
	return &MockAppointmentRepository{}
}

// Create stores an appointment
func (m *MockAppointmentRepository) Create(ctx context.Context, appt *domain.Appointment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, appt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if appt.ID == "" {
		appt.ID = fmt.Sprintf("appt_%d", len(m.appts)+1)
	}
	m.appts = append(m.appts, appt)
	return nil
}

// FindByUser lists the user's appointments
func (m *MockAppointmentRepository) FindByUser(ctx context.Context, userID string) ([]*domain.Appointment, error) {
	if m.FindByUserFunc != nil {
		return m.FindByUserFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Appointment{}
	for _, a := range m.appts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

// FindByID looks up one of the user's appointments
func (m *MockAppointmentRepository) FindByID(ctx context.Context, id, userID string) (*domain.Appointment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.appts {
		if a.ID == id && a.UserID == userID {
			return a, nil
		}
	}
	return nil, domain.ErrAppointmentNotFound
}

// HasConflict reports whether a non-cancelled appointment occupies the slot
func (m *MockAppointmentRepository) HasConflict(ctx context.Context, userID string, date time.Time, timeSlot string) (bool, error) {
	if m.HasConflictFunc != nil {
		return m.HasConflictFunc(ctx, userID, date, timeSlot)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.appts {
		if a.UserID == userID && a.Date.Equal(date) && a.Time == timeSlot && a.Status != domain.AppointmentCancelled {
			return true, nil
		}
	}
	return false, nil
}

// UpdateStatus transitions an appointment's status
func (m *MockAppointmentRepository) UpdateStatus(ctx context.Context, id, userID, status string) (*domain.Appointment, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, userID, status)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.appts {
		if a.ID == id && a.UserID == userID {
			a.Status = status
			return a, nil
		}
	}
	return nil, domain.ErrAppointmentNotFound
}
