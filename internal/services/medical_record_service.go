package services

import (
	"context"
	"fmt"

	"github.com/you/healthportal/domain"
)

// MedicalRecordServiceImpl implements domain.MedicalRecordService
type MedicalRecordServiceImpl struct {
	recRepo domain.MedicalRecordRepository
}

// NewMedicalRecordService creates a new medical-record service
func NewMedicalRecordService(recRepo domain.MedicalRecordRepository) domain.MedicalRecordService {
	return &MedicalRecordServiceImpl{recRepo: recRepo}
}

// Create implements domain.MedicalRecordService
func (s *MedicalRecordServiceImpl) Create(ctx context.Context, rec *domain.MedicalRecord) (*domain.MedicalRecord, error) {
	switch rec.Type {
	case domain.RecordVisit, domain.RecordProcedure, domain.RecordTest, domain.RecordVaccination:
	default:
		return nil, fmt.Errorf("%w: invalid record type", domain.ErrValidation)
	}
	if rec.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", domain.ErrValidation)
	}

	if err := s.recRepo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to create medical record: %w", err)
	}
	return rec, nil
}

// List implements domain.MedicalRecordService
func (s *MedicalRecordServiceImpl) List(ctx context.Context, userID string) ([]*domain.MedicalRecord, error) {
	return s.recRepo.FindByUser(ctx, userID)
}
