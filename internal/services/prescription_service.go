package services

import (
	"context"
	"fmt"

	"github.com/you/healthportal/domain"
)

// PrescriptionServiceImpl implements domain.PrescriptionService
type PrescriptionServiceImpl struct {
	rxRepo domain.PrescriptionRepository
}

// NewPrescriptionService creates a new prescription service
func NewPrescriptionService(rxRepo domain.PrescriptionRepository) domain.PrescriptionService {
	return &PrescriptionServiceImpl{rxRepo: rxRepo}
}

// Create implements domain.PrescriptionService
func (s *PrescriptionServiceImpl) Create(ctx context.Context, p *domain.Prescription) (*domain.Prescription, error) {
	if p.Medication.Name == "" || p.Medication.Dosage == "" || p.Medication.Frequency == "" ||
		p.PrescribedBy.Name == "" || p.StartDate.IsZero() || p.EndDate.IsZero() {
		return nil, fmt.Errorf("%w: please enter all required fields for the prescription", domain.ErrValidation)
	}
	if p.EndDate.Before(p.StartDate) {
		return nil, fmt.Errorf("%w: end date cannot be before start date", domain.ErrValidation)
	}
	if p.Status == "" {
		p.Status = domain.PrescriptionActive
	}

	if err := s.rxRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create prescription: %w", err)
	}
	return p, nil
}

// List implements domain.PrescriptionService
func (s *PrescriptionServiceImpl) List(ctx context.Context, userID string) ([]*domain.Prescription, error) {
	return s.rxRepo.FindByUser(ctx, userID)
}
