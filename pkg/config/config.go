package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string        `env:"SERVER_PORT" envDefault:"8080"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	Firebase FirebaseConfig
	Redis    RedisConfig
	Mail     MailConfig
	Limits   LimitConfig
}

type FirebaseConfig struct {
	ProjectID          string `env:"FIREBASE_PROJECT_ID"`
	ServiceAccountJSON string `env:"FIREBASE_SERVICE_ACCOUNT_JSON"`
	ServiceAccountPath string `env:"FIREBASE_SERVICE_ACCOUNT_PATH" envDefault:"./firebase-service-account.json"`
	StorageBucket      string `env:"STORAGE_BUCKET"`
}

// RedisConfig is optional. An empty Addr keeps role resolution cached in
// process memory.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type MailConfig struct {
	SendGridAPIKey string `env:"SENDGRID_API_KEY"`
	From           string `env:"MAIL_FROM" envDefault:"no-reply@gamerverse.app"`
	SupportEmail   string `env:"SUPPORT_EMAIL"`
}

type LimitConfig struct {
	CheckoutPerMinute int           `env:"CHECKOUT_RATE_PER_MINUTE" envDefault:"10"`
	ContactPerMinute  int           `env:"CONTACT_RATE_PER_MINUTE" envDefault:"5"`
	TaskTimeout       time.Duration `env:"TASK_TIMEOUT" envDefault:"15s"`
}

func Load() (*Config, error) {
	// .env is optional; deployed environments inject real variables.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Firebase.ProjectID == "" {
		return fmt.Errorf("FIREBASE_PROJECT_ID is required")
	}
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT must not be empty")
	}
	if c.Limits.CheckoutPerMinute <= 0 || c.Limits.ContactPerMinute <= 0 {
		return fmt.Errorf("rate limits must be positive")
	}
	if c.Limits.TaskTimeout <= 0 {
		return fmt.Errorf("TASK_TIMEOUT must be positive")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown LOG_LEVEL %q", c.LogLevel)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) MailEnabled() bool {
	return c.Mail.SendGridAPIKey != ""
}
