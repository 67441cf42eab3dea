package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
	Env     string `yaml:"env"`
}

type MongoConfig struct {
	URI            string `yaml:"uri"`
	Database       string `yaml:"database"`
	ConnectTimeout string `yaml:"connect_timeout"`
	RetryAttempts  int    `yaml:"retry_attempts"`
	RetryInterval  string `yaml:"retry_interval"`
	WatchInterval  string `yaml:"watch_interval"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
	Issuer string `yaml:"issuer"`
	TTL    string `yaml:"ttl"`
}

type ResetConfig struct {
	TTL          string `yaml:"ttl"`
	ResendWindow string `yaml:"resend_window"`
}

type EmailConfig struct {
	PostmarkServerToken  string `yaml:"postmark_server_token"`
	PostmarkAccountToken string `yaml:"postmark_account_token"`
	Sender               string `yaml:"sender"`
	DevDir               string `yaml:"dev_dir"`
}

type ConfigFile struct {
	App   AppConfig   `yaml:"app"`
	Mongo MongoConfig `yaml:"mongo"`
	Redis RedisConfig `yaml:"redis"`
	JWT   JWTConfig   `yaml:"jwt"`
	Reset ResetConfig `yaml:"reset"`
	Email EmailConfig `yaml:"email"`
}

type Config struct {
	Port    string
	GinMode string
	Env     string

	MongoURI            string
	MongoDatabase       string
	MongoConnectTimeout time.Duration
	MongoRetryAttempts  int
	MongoRetryInterval  time.Duration
	MongoWatchInterval  time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration

	ResetTTL          time.Duration
	ResetResendWindow time.Duration

	PostmarkServerToken  string
	PostmarkAccountToken string
	EmailSender          string
	EmailDevDir          string
}

// IsProduction reports whether detail messages must be suppressed.
func (c *Config) IsProduction() bool { return c.Env == "production" }

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml and applies environment overrides for
// deployment secrets (MONGO_URI, REDIS_ADDR, JWT_SECRET, POSTMARK_* and
// EMAIL_SENDER).
func Load() (*Config, error) {
	return LoadFile(env("CONFIG_PATH", "config/config.yml"))
}

func LoadFile(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	connectTimeout, err := time.ParseDuration(configFile.Mongo.ConnectTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid mongo connect timeout: %w", err)
	}
	retryInterval, err := time.ParseDuration(configFile.Mongo.RetryInterval)
	if err != nil {
		return nil, fmt.Errorf("invalid mongo retry interval: %w", err)
	}
	watchInterval, err := time.ParseDuration(configFile.Mongo.WatchInterval)
	if err != nil {
		return nil, fmt.Errorf("invalid mongo watch interval: %w", err)
	}
	tokenTTL, err := time.ParseDuration(configFile.JWT.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT TTL: %w", err)
	}
	resetTTL, err := time.ParseDuration(configFile.Reset.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid reset code TTL: %w", err)
	}
	resendWindow, err := time.ParseDuration(configFile.Reset.ResendWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid reset resend window: %w", err)
	}

	return &Config{
		Port:    fmt.Sprintf("%d", configFile.App.Port),
		GinMode: configFile.App.GinMode,
		Env:     env("APP_ENV", configFile.App.Env),

		MongoURI:            env("MONGO_URI", configFile.Mongo.URI),
		MongoDatabase:       configFile.Mongo.Database,
		MongoConnectTimeout: connectTimeout,
		MongoRetryAttempts:  configFile.Mongo.RetryAttempts,
		MongoRetryInterval:  retryInterval,
		MongoWatchInterval:  watchInterval,

		RedisAddr:     env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword: env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:       configFile.Redis.DB,

		JWTSecret: env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer: configFile.JWT.Issuer,
		TokenTTL:  tokenTTL,

		ResetTTL:          resetTTL,
		ResetResendWindow: resendWindow,

		PostmarkServerToken:  env("POSTMARK_SERVER_TOKEN", configFile.Email.PostmarkServerToken),
		PostmarkAccountToken: env("POSTMARK_ACCOUNT_TOKEN", configFile.Email.PostmarkAccountToken),
		EmailSender:          env("EMAIL_SENDER", configFile.Email.Sender),
		EmailDevDir:          configFile.Email.DevDir,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
