package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/healthportal/domain"
)

// PrescriptionHandlers handles prescription HTTP requests
type PrescriptionHandlers struct {
	rxSvc domain.PrescriptionService
}

// NewPrescriptionHandlers creates new prescription handlers
func NewPrescriptionHandlers(rxSvc domain.PrescriptionService) *PrescriptionHandlers {
	return &PrescriptionHandlers{rxSvc: rxSvc}
}

// CreatePrescriptionRequest represents a prescription creation request
type CreatePrescriptionRequest struct {
	Medication   domain.Medication `json:"medication" binding:"required"`
	PrescribedBy domain.Prescriber `json:"prescribedBy" binding:"required"`
	StartDate    string            `json:"startDate" binding:"required"`
	EndDate      string            `json:"endDate" binding:"required"`
	Refills      domain.Refills    `json:"refills,omitempty"`
	Status       string            `json:"status,omitempty"`
	Pharmacy     domain.Pharmacy   `json:"pharmacy,omitempty"`
	Notes        string            `json:"notes,omitempty"`
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// Create handles prescription creation
func (h *PrescriptionHandlers) Create(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please enter all required fields for the prescription."})
		return
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid start date"})
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid end date"})
		return
	}

	created, err := h.rxSvc.Create(c.Request.Context(), &domain.Prescription{
		UserID:       userID,
		Medication:   req.Medication,
		PrescribedBy: req.PrescribedBy,
		StartDate:    startDate,
		EndDate:      endDate,
		Refills:      req.Refills,
		Status:       req.Status,
		Pharmacy:     req.Pharmacy,
		Notes:        req.Notes,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Please enter all required fields for the prescription."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// List handles fetching the user's prescriptions, newest first.
func (h *PrescriptionHandlers) List(c *gin.Context) {
	userID := c.GetString("user_id")

	prescriptions, err := h.rxSvc.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, prescriptions)
}
