package app

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/healthportal/internal/config"
	httpx "github.com/you/healthportal/internal/http"
	"github.com/you/healthportal/internal/http/handlers"
	"github.com/you/healthportal/internal/http/middleware"
)

func Run(cfg *config.Config) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx := context.Background()
	c, err := NewContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer c.Close(ctx)

	// Best-effort: the throttle degrades to fail-open when Redis is down.
	if err := c.RedisClient.Ping(ctx).Err(); err != nil {
		log.Printf("redis: unreachable at startup, reset throttling disabled: %v", err)
	}

	c.Mongo.StartWatcher()

	authH := handlers.NewAuthHandlers(c.AuthSvc, !cfg.IsProduction())
	apptH := handlers.NewAppointmentHandlers(c.AppointmentSvc)
	rxH := handlers.NewPrescriptionHandlers(c.PrescriptionSvc)
	recH := handlers.NewMedicalRecordHandlers(c.MedicalRecordSvc)
	jwtMW := middleware.NewAuthMW(c.TokenSvc)

	r := httpx.BuildRouter(authH, apptH, rxH, recH, jwtMW, c.Mongo)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}
