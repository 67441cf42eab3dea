package app

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/you/healthportal/domain"
	"github.com/you/healthportal/internal/config"
	"github.com/you/healthportal/internal/infrastructure/auth"
	"github.com/you/healthportal/internal/infrastructure/database"
	"github.com/you/healthportal/internal/infrastructure/notifications"
	"github.com/you/healthportal/internal/infrastructure/repositories"
	"github.com/you/healthportal/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config

	// Infrastructure
	Mongo       *database.Mongo
	RedisClient *redis.Client

	// Repositories
	UserRepo          domain.UserRepository
	AppointmentRepo   domain.AppointmentRepository
	PrescriptionRepo  domain.PrescriptionRepository
	MedicalRecordRepo domain.MedicalRecordRepository

	// Services
	PasswordSvc      domain.PasswordService
	TokenSvc         domain.TokenService
	NotificationSvc  domain.NotificationService
	ResetCodeSvc     domain.ResetCodeService
	AuditLogger      domain.AuditLogger
	AuthSvc          domain.AuthService
	AppointmentSvc   domain.AppointmentService
	PrescriptionSvc  domain.PrescriptionService
	MedicalRecordSvc domain.MedicalRecordService
}

// NewContainer creates and initializes all dependencies
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	if err := container.initMongo(ctx); err != nil {
		return nil, err
	}
	container.initRedis()
	container.initRepositories()
	container.initServices()

	return container, nil
}

func (c *Container) initMongo(ctx context.Context) error {
	m, err := database.Connect(ctx, database.MongoConfig{
		URI:            c.Config.MongoURI,
		Database:       c.Config.MongoDatabase,
		ConnectTimeout: c.Config.MongoConnectTimeout,
		RetryAttempts:  c.Config.MongoRetryAttempts,
		RetryInterval:  c.Config.MongoRetryInterval,
		WatchInterval:  c.Config.MongoWatchInterval,
	})
	if err != nil {
		return err
	}
	if err := m.EnsureIndexes(ctx); err != nil {
		return err
	}
	c.Mongo = m
	return nil
}

func (c *Container) initRedis() {
	c.RedisClient = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB).Client
}

func (c *Container) initRepositories() {
	db := c.Mongo.Database()
	c.UserRepo = repositories.NewUserRepository(db)
	c.AppointmentRepo = repositories.NewAppointmentRepository(db)
	c.PrescriptionRepo = repositories.NewPrescriptionRepository(db)
	c.MedicalRecordRepo = repositories.NewMedicalRecordRepository(db)
}

func (c *Container) initServices() {
	c.PasswordSvc = auth.NewPasswordService(auth.DefaultCost)
	c.TokenSvc = auth.NewJWTService(c.Config.JWTSecret, c.Config.JWTIssuer, c.Config.TokenTTL)
	c.NotificationSvc = notifications.NewEmailService(
		c.Config.PostmarkServerToken,
		c.Config.PostmarkAccountToken,
		c.Config.EmailSender,
		c.Config.EmailDevDir,
	)
	c.ResetCodeSvc = services.NewResetCodeService(c.RedisClient, services.ResetCodeConfig{
		TTL:          c.Config.ResetTTL,
		ResendWindow: c.Config.ResetResendWindow,
	})
	c.AuditLogger = services.NewAuditLogger()

	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.ResetCodeSvc,
		c.NotificationSvc,
		c.AuditLogger,
		c.Config.ResetTTL,
	)
	c.AppointmentSvc = services.NewAppointmentService(c.AppointmentRepo)
	c.PrescriptionSvc = services.NewPrescriptionService(c.PrescriptionRepo)
	c.MedicalRecordSvc = services.NewMedicalRecordService(c.MedicalRecordRepo)
}

// Close closes all connections
func (c *Container) Close(ctx context.Context) error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}
	if c.Mongo != nil {
		return c.Mongo.Close(ctx)
	}
	return nil
}
