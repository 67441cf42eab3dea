package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/healthportal/domain"
)

// MedicalRecordHandlers handles medical-history HTTP requests
type MedicalRecordHandlers struct {
	recSvc domain.MedicalRecordService
}

// NewMedicalRecordHandlers creates new medical-record handlers
func NewMedicalRecordHandlers(recSvc domain.MedicalRecordService) *MedicalRecordHandlers {
	return &MedicalRecordHandlers{recSvc: recSvc}
}

// CreateMedicalRecordRequest represents a medical-record creation request
type CreateMedicalRecordRequest struct {
	Type        string              `json:"type" binding:"required"`
	Date        string              `json:"date" binding:"required"`
	Provider    domain.Prescriber   `json:"provider,omitempty"`
	Description string              `json:"description,omitempty"`
	Attachments []domain.Attachment `json:"attachments,omitempty"`
}

// Create handles medical-record creation
func (h *MedicalRecordHandlers) Create(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateMedicalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide type and date"})
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid date format"})
		return
	}

	created, err := h.recSvc.Create(c.Request.Context(), &domain.MedicalRecord{
		UserID:      userID,
		Type:        req.Type,
		Date:        date,
		Provider:    req.Provider,
		Description: req.Description,
		Attachments: req.Attachments,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// List handles fetching the user's medical history, most recent first.
func (h *MedicalRecordHandlers) List(c *gin.Context) {
	userID := c.GetString("user_id")

	records, err := h.recSvc.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, records)
}
