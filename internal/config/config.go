package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the whole application configuration, populated from
// environment variables.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Email    EmailConfig
	Uploads  UploadsConfig
	Import   ImportConfig
	Notify   NotifyConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry int // minutes
}

type EmailConfig struct {
	SMTPHost string
	SMTPPort string
	From     string
	Password string
}

type UploadsConfig struct {
	Dir       string // where uploaded PDFs land on disk
	URLPrefix string // public prefix the files are served under
}

type ImportConfig struct {
	// FuzzyEventMatch enables the case-insensitive substring match of a
	// BibTeX booktitle against existing event names. Off means exact
	// (case-insensitive) name match only.
	FuzzyEventMatch bool
}

type NotifyConfig struct {
	// SkipAlreadySent suppresses a second email to a (user, article) pair
	// that already has an email log row.
	SkipAlreadySent bool
}

// Load reads config from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Digital Library API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "library"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 60*24),
		},
		Email: EmailConfig{
			SMTPHost: getEnv("SMTP_SERVER", "smtp.gmail.com"),
			SMTPPort: getEnv("SMTP_PORT", "587"),
			From:     getEnv("EMAIL_FROM", "noreply@digitallibrary.com"),
			Password: getEnv("EMAIL_PASSWORD", ""),
		},
		Uploads: UploadsConfig{
			Dir:       getEnv("UPLOADS_DIR", "./uploads"),
			URLPrefix: getEnv("UPLOADS_URL_PREFIX", "/uploads"),
		},
		Import: ImportConfig{
			FuzzyEventMatch: getEnvBool("IMPORT_FUZZY_EVENT_MATCH", true),
		},
		Notify: NotifyConfig{
			SkipAlreadySent: getEnvBool("NOTIFY_SKIP_ALREADY_SENT", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate rejects configs that must never reach production.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.JWT.Secret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
		if c.Email.Password == "" {
			fmt.Println("WARNING: EMAIL_PASSWORD not set - notification emails will fail")
		}
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
