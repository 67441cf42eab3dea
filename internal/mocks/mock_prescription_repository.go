package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/you/healthportal/domain"
)

// MockPrescriptionRepository implements domain.PrescriptionRepository interface for testing
type MockPrescriptionRepository struct {
	CreateFunc     func(ctx context.Context, p *domain.Prescription) error
	FindByUserFunc func(ctx context.Context, userID string) ([]*domain.Prescription, error)

	mu sync.Mutex
	ps []*domain.Prescription
}

// NewMockPrescriptionRepository creates a new MockPrescriptionRepository
func NewMockPrescriptionRepository() *MockPrescriptionRepository {
	return &MockPrescriptionRepository{}
}

// Create stores a prescription
func (m *MockPrescriptionRepository) Create(ctx context.Context, p *domain.Prescription) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = fmt.Sprintf("rx_%d", len(m.ps)+1)
	}
	m.ps = append(m.ps, p)
	return nil
}

// FindByUser lists the user's prescriptions
func (m *MockPrescriptionRepository) FindByUser(ctx context.Context, userID string) ([]*domain.Prescription, error) {
	if m.FindByUserFunc != nil {
		return m.FindByUserFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Prescription{}
	for _, p := range m.ps {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}
