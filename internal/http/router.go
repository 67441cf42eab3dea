package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/healthportal/internal/http/handlers"
	"github.com/you/healthportal/internal/http/middleware"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Healthy() bool
}

func BuildRouter(
	ah *handlers.AuthHandlers,
	ph *handlers.AppointmentHandlers,
	rh *handlers.PrescriptionHandlers,
	mh *handlers.MedicalRecordHandlers,
	jwtmw *middleware.AuthMW,
	store HealthChecker,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/health", func(c *gin.Context) {
		if !store.Healthy() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "store unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	auth := r.Group("/api/auth")
	auth.POST("/register", ah.Register)
	auth.POST("/login", ah.Login)
	auth.POST("/reset-password", ah.ResetPassword)
	auth.POST("/verify-reset-code", ah.VerifyResetCode)

	protected := auth.Group("").Use(jwtmw.WithJWT())
	protected.GET("/profile", ah.GetProfile)
	protected.PUT("/profile", ah.UpdateProfile)
	protected.PUT("/change-password", ah.ChangePassword)

	appts := r.Group("/api/appointments").Use(jwtmw.WithJWT())
	appts.POST("", ph.Book)
	appts.GET("", ph.List)
	appts.PATCH("/:id/status", ph.UpdateStatus)

	rx := r.Group("/api/prescriptions").Use(jwtmw.WithJWT())
	rx.POST("", rh.Create)
	rx.GET("", rh.List)

	records := r.Group("/api/medical-records").Use(jwtmw.WithJWT())
	records.POST("", mh.Create)
	records.GET("", mh.List)

	return r
}
