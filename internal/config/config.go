package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"tigerlife/internal/pkg/logger"
)

const defaultJWTSecret = "change-me-jwt-secret"

// Storage drivers.
const (
	StorageDisk = "disk"
	StorageS3   = "s3"
)

type Config struct {
	AppEnv      string        `envconfig:"APP_ENV" default:"dev"`
	HTTPAddr    string        `envconfig:"HTTP_ADDR" default:":8080"`
	DatabaseURL string        `envconfig:"DATABASE_URL" default:"tigerlife.db"`
	JWTSecret   string        `envconfig:"JWT_SECRET" default:"change-me-jwt-secret"`
	JWTTTL      time.Duration `envconfig:"JWT_TTL" default:"24h"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS"`

	Storage   StorageConfig
	Functions FunctionsConfig
	Rabbit    RabbitConfig
	Polling   PollingConfig
}

type StorageConfig struct {
	Driver    string `envconfig:"STORAGE_DRIVER" default:"disk"`
	Dir       string `envconfig:"STORAGE_DIR" default:"./uploads"`
	PublicURL string `envconfig:"STORAGE_PUBLIC_URL" default:"/static/uploads"`

	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey string `envconfig:"S3_SECRET_KEY"`
}

type FunctionsConfig struct {
	URL     string        `envconfig:"FUNCTIONS_URL"`
	Key     string        `envconfig:"FUNCTIONS_KEY"`
	Timeout time.Duration `envconfig:"FUNCTIONS_TIMEOUT" default:"30s"`
}

type RabbitConfig struct {
	URL      string `envconfig:"RABBIT_URL"`
	Exchange string `envconfig:"RABBIT_EXCHANGE" default:"tigerlife.notifications"`
}

// PollingConfig holds the refresh intervals used by realtime sessions.
type PollingConfig struct {
	UnreadCount   time.Duration `envconfig:"POLL_UNREAD" default:"10s"`
	Messages      time.Duration `envconfig:"POLL_MESSAGES" default:"10s"`
	Conversations time.Duration `envconfig:"POLL_CONVERSATIONS" default:"20s"`
	Notifications time.Duration `envconfig:"POLL_NOTIFICATIONS" default:"30s"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}

	switch cfg.Storage.Driver {
	case StorageDisk:
	case StorageS3:
		if cfg.Storage.S3Endpoint == "" {
			return fmt.Errorf("S3_ENDPOINT is required when STORAGE_DRIVER=s3")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of: disk, s3")
	}

	p := cfg.Polling
	if p.UnreadCount <= 0 || p.Messages <= 0 || p.Conversations <= 0 || p.Notifications <= 0 {
		return fmt.Errorf("polling intervals must be > 0")
	}

	if logger.IsProdLike(cfg.AppEnv) {
		secret := strings.TrimSpace(cfg.JWTSecret)
		if secret == "" || secret == defaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
	}
	return nil
}
