package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds application configuration. Values are read from an optional
// YAML file first, then overlaid with environment variables.
type Config struct {
	Env       string          `yaml:"env" env:"ENV" env-default:"local"`
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Redis     RedisConfig     `yaml:"redis"`
	Email     EmailConfig     `yaml:"email"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	OAuth     OAuthConfig     `yaml:"oauth"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port         string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	BaseURL      string        `yaml:"base_url" env:"APP_BASE_URL" env-default:"http://localhost:8080"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// DatabaseConfig holds database connection settings.
// Type selects the dialect: sqlite (default), postgres or mysql.
type DatabaseConfig struct {
	Type           string `yaml:"type" env:"DB_TYPE" env-default:"sqlite"`
	Path           string `yaml:"path" env:"DB_PATH" env-default:"./truongphat.db"`
	URL            string `yaml:"url" env:"DATABASE_URL"`
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
}

// AuthConfig holds token issuance settings for staff sessions.
type AuthConfig struct {
	JWTSecret       string        `yaml:"jwt_secret" env:"JWT_SECRET" env-default:"dev-secret-change-me"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl" env:"ACCESS_TOKEN_TTL" env-default:"30m"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" env:"REFRESH_TOKEN_TTL" env-default:"720h"`
	Issuer          string        `yaml:"issuer" env:"JWT_ISSUER" env-default:"truongphat"`
}

// RedisConfig holds the optional Redis connection for the submission ledger.
// When URL is empty the ledger falls back to the in-memory store.
type RedisConfig struct {
	URL string `yaml:"url" env:"REDIS_URL"`
}

// EmailConfig holds Amazon SES settings. Empty FromEmail disables sending.
type EmailConfig struct {
	AWSRegion    string `yaml:"aws_region" env:"AWS_REGION" env-default:"ap-southeast-1"`
	FromEmail    string `yaml:"from_email" env:"SES_FROM_EMAIL"`
	FromName     string `yaml:"from_name" env:"SES_FROM_NAME" env-default:"Trường Phát"`
	ContactInbox string `yaml:"contact_inbox" env:"CONTACT_INBOX"`
}

// RateLimitConfig holds the contact-form submission policy.
type RateLimitConfig struct {
	MaxSubmissions int           `yaml:"max_submissions" env:"CONTACT_MAX_SUBMISSIONS" env-default:"5"`
	ResetPeriod    time.Duration `yaml:"reset_period" env:"CONTACT_RESET_PERIOD" env-default:"24h"`
}

// OAuthConfig holds Google sign-in settings for the staff back-office.
type OAuthConfig struct {
	GoogleClientID     string `yaml:"google_client_id" env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `yaml:"google_client_secret" env:"GOOGLE_CLIENT_SECRET"`
}

// MustLoad wraps Load and panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration with the following priority:
// 1) explicit path argument; 2) CONFIG_PATH env var; 3) environment only.
func Load(path string) (*Config, error) {
	var cfg Config

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %q: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Environment variables override file values.
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from env: %w", err)
	}
	return &cfg, nil
}
