package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/you/healthportal/domain"
	"github.com/you/healthportal/internal/mocks"
)

func TestMedicalRecordServiceImpl_Create(t *testing.T) {
	date := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		rec           *domain.MedicalRecord
		expectedError error
	}{
		{
			name: "successful create",
			rec: &domain.MedicalRecord{
				UserID:      "user_1",
				Type:        domain.RecordVisit,
				Date:        date,
				Provider:    domain.Prescriber{Name: "Dr. Smith"},
				Description: "Annual physical",
			},
		},
		{
			name: "vaccination with attachment",
			rec: &domain.MedicalRecord{
				UserID: "user_1",
				Type:   domain.RecordVaccination,
				Date:   date,
				Attachments: []domain.Attachment{
					{Name: "card.pdf", URL: "https://files.example.com/card.pdf", Type: "pdf"},
				},
			},
		},
		{
			name: "unknown record type",
			rec: &domain.MedicalRecord{
				UserID: "user_1",
				Type:   "surgery",
				Date:   date,
			},
			expectedError: domain.ErrValidation,
		},
		{
			name: "missing date",
			rec: &domain.MedicalRecord{
				UserID: "user_1",
				Type:   domain.RecordTest,
			},
			expectedError: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recRepo := mocks.NewMockMedicalRecordRepository()
			svc := NewMedicalRecordService(recRepo)

			created, err := svc.Create(context.Background(), tt.rec)

			if tt.expectedError != nil {
				if !errors.Is(err, tt.expectedError) {
					t.Fatalf("expected error %v, got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if created.ID == "" {
				t.Error("expected an assigned ID")
			}
		})
	}
}

func TestMedicalRecordServiceImpl_ListIsScopedToUser(t *testing.T) {
	recRepo := mocks.NewMockMedicalRecordRepository()
	svc := NewMedicalRecordService(recRepo)
	date := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	mine := &domain.MedicalRecord{UserID: "user_1", Type: domain.RecordVisit, Date: date}
	theirs := &domain.MedicalRecord{UserID: "user_2", Type: domain.RecordTest, Date: date}
	if _, err := svc.Create(context.Background(), mine); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Create(context.Background(), theirs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list, err := svc.List(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 1 || list[0].UserID != "user_1" {
		t.Fatalf("expected only own records, got %d entries", len(list))
	}
}
