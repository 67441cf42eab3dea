package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/healthportal/domain"
)

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc domain.AuthService
	devMode bool
}

// NewAuthHandlers creates new auth handlers. devMode controls whether 500
// responses carry detail messages.
func NewAuthHandlers(authSvc domain.AuthService, devMode bool) *AuthHandlers {
	return &AuthHandlers{authSvc: authSvc, devMode: devMode}
}

// RegisterRequest represents registration request
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role,omitempty"` // Optional, defaults to "patient"
}

// LoginRequest represents login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest represents the mutable profile fields
type UpdateProfileRequest struct {
	Name              string `json:"name,omitempty"`
	Email             string `json:"email,omitempty"`
	FirstName         string `json:"firstName,omitempty"`
	LastName          string `json:"lastName,omitempty"`
	Phone             string `json:"phone,omitempty"`
	Address           string `json:"address,omitempty"`
	DateOfBirth       string `json:"dateOfBirth,omitempty"`
	Gender            string `json:"gender,omitempty"`
	PolicyNumber      string `json:"policyNumber,omitempty"`
	InsuranceProvider string `json:"insuranceProvider,omitempty"`
	City              string `json:"city,omitempty"`
	State             string `json:"state,omitempty"`
	ZipCode           string `json:"zipCode,omitempty"`
}

// ChangePasswordRequest represents password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// ResetPasswordRequest represents a reset-code request
type ResetPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// VerifyResetCodeRequest represents the second step of the reset flow
type VerifyResetCodeRequest struct {
	Email       string `json:"email" binding:"required"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

func (h *AuthHandlers) serverError(c *gin.Context, err error) {
	msg := "Server error"
	if h.devMode && err != nil {
		msg = err.Error()
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": msg})
}

// Register handles user registration
func (h *AuthHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	result, err := h.authSvc.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserAlreadyExists):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "User already exists"})
		case errors.Is(err, domain.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		default:
			h.serverError(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"token":   result.Token,
		"user":    result.User,
	})
}

// Login handles user login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Please provide email and password"})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Incorrect email"})
		case errors.Is(err, domain.ErrInvalidPassword):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Incorrect password"})
		default:
			h.serverError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   result.Token,
		"user":    result.User,
	})
}

// GetProfile handles fetching the authenticated user's profile
func (h *AuthHandlers) GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	user, err := h.authSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
			return
		}
		h.serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// UpdateProfile handles updating the authenticated user's profile
func (h *AuthHandlers) UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	user, err := h.authSvc.UpdateProfile(c.Request.Context(), userID, &domain.ProfileUpdate{
		Name:              req.Name,
		Email:             req.Email,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Phone:             req.Phone,
		Address:           req.Address,
		DateOfBirth:       req.DateOfBirth,
		Gender:            req.Gender,
		PolicyNumber:      req.PolicyNumber,
		InsuranceProvider: req.InsuranceProvider,
		City:              req.City,
		State:             req.State,
		ZipCode:           req.ZipCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		case errors.Is(err, domain.ErrUserAlreadyExists):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Email already in use"})
		case errors.Is(err, domain.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		default:
			h.serverError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// ChangePassword handles password change for the authenticated user
func (h *AuthHandlers) ChangePassword(c *gin.Context) {
	userID := c.GetString("user_id")

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	err := h.authSvc.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		case errors.Is(err, domain.ErrInvalidPassword):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Current password is incorrect"})
		case errors.Is(err, domain.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		default:
			h.serverError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password updated successfully"})
}

// ResetPassword handles the first step of the reset flow: generate a code
// and email it. The response never reveals whether the email is registered.
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide an email address"})
		return
	}

	if err := h.authSvc.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to send reset code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "If an account exists with this email, you will receive password reset instructions",
	})
}

// VerifyResetCode handles the second step of the reset flow: verify the
// code and set the new password.
func (h *AuthHandlers) VerifyResetCode(c *gin.Context) {
	var req VerifyResetCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Please provide email, reset code, and new password"})
		return
	}

	err := h.authSvc.VerifyResetCode(c.Request.Context(), req.Email, req.Code, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		case errors.Is(err, domain.ErrNoResetRequested):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No reset code requested"})
		case errors.Is(err, domain.ErrResetCodeExpired):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Reset code has expired"})
		case errors.Is(err, domain.ErrResetCodeInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid reset code"})
		case errors.Is(err, domain.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to reset password"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password has been reset successfully"})
}
