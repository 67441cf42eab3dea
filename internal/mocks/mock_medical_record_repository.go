package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/you/healthportal/domain"
)

// MockMedicalRecordRepository implements domain.MedicalRecordRepository interface for testing
type MockMedicalRecordRepository struct {
	CreateFunc     func(ctx context.Context, rec *domain.MedicalRecord) error
	FindByUserFunc func(ctx context.Context, userID string) ([]*domain.MedicalRecord, error)

	mu   sync.Mutex
	recs []*domain.MedicalRecord
}

// NewMockMedicalRecordRepository creates a new MockMedicalRecordRepository
func NewMockMedicalRecordRepository() *MockMedicalRecordRepository {
	return &MockMedicalRecordRepository{}
}

// Create stores a medical record
func (m *MockMedicalRecordRepository) Create(ctx context.Context, rec *domain.MedicalRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, rec)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec.ID == "" {
		rec.ID = fmt.Sprintf("rec_%d", len(m.recs)+1)
	}
	m.recs = append(m.recs, rec)
	return nil
}

// FindByUser lists the user's medical records
func (m *MockMedicalRecordRepository) FindByUser(ctx context.Context, userID string) ([]*domain.MedicalRecord, error) {
	if m.FindByUserFunc != nil {
		return m.FindByUserFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.MedicalRecord{}
	for _, r := range m.recs {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}
