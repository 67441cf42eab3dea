package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/you/healthportal/domain"
)

// AppointmentHandlers handles appointment HTTP requests
type AppointmentHandlers struct {
	apptSvc domain.AppointmentService
}

// NewAppointmentHandlers creates new appointment handlers
func NewAppointmentHandlers(apptSvc domain.AppointmentService) *AppointmentHandlers {
	return &AppointmentHandlers{apptSvc: apptSvc}
}

// BookAppointmentRequest represents an appointment booking request
type BookAppointmentRequest struct {
	DoctorName     string `json:"doctorName" binding:"required"`
	Specialization string `json:"specialization" binding:"required"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
	Location       string `json:"location" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	Reason         string `json:"reason,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

// UpdateAppointmentStatusRequest represents a status change request
type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Book handles appointment creation
func (h *AppointmentHandlers) Book(c *gin.Context) {
	userID := c.GetString("user_id")

	var req BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide all required fields"})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		if date, err = time.Parse(time.RFC3339, req.Date); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid date format"})
			return
		}
	}

	appt, err := h.apptSvc.Book(c.Request.Context(), &domain.Appointment{
		UserID:     userID,
		DoctorName: req.DoctorName,
		Specialty:  req.Specialization,
		Date:       date,
		Time:       req.Time,
		Location:   req.Location,
		Phone:      req.Phone,
		Reason:     req.Reason,
		Notes:      req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAppointmentInPast):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Appointment date cannot be in the past"})
		case errors.Is(err, domain.ErrAppointmentConflict):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "You already have an appointment scheduled for this date and time"})
		case errors.Is(err, domain.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide all required fields"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error creating appointment"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Appointment booked successfully",
		"data":    appt,
	})
}

// List handles fetching the user's appointments, soonest first.
func (h *AppointmentHandlers) List(c *gin.Context) {
	userID := c.GetString("user_id")

	appointments, err := h.apptSvc.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching appointments"})
		return
	}
	c.JSON(http.StatusOK, appointments)
}

// UpdateStatus handles appointment status changes
func (h *AppointmentHandlers) UpdateStatus(c *gin.Context) {
	userID := c.GetString("user_id")
	apptID := c.Param("id")

	var req UpdateAppointmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Status is required"})
		return
	}

	appt, err := h.apptSvc.UpdateStatus(c.Request.Context(), apptID, userID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAppointmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Appointment not found"})
		case errors.Is(err, domain.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating appointment"})
		}
		return
	}

	c.JSON(http.StatusOK, appt)
}
