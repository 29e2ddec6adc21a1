package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// DatabaseConfig holds PostgreSQL connection settings for the decisions registry.
type DatabaseConfig struct {
	Host               string `validate:"required"`
	Port               string `validate:"required"`
	User               string `validate:"required"`
	Password           string
	Name               string `validate:"required"`
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// StorageConfig holds object storage settings for the decision-documents bucket.
// Static keys and a shared credentials file are both supported; at least one of
// the two must be configured.
type StorageConfig struct {
	Endpoint        string `validate:"required"`
	AccessKey       string `validate:"required_without=CredentialsFile"`
	SecretKey       string `validate:"required_without=CredentialsFile"`
	CredentialsFile string
	Bucket          string `validate:"required"`
	UseSSL          bool
	// DownloadURLTTLMin bounds the validity of generated download links, in minutes.
	DownloadURLTTLMin int `validate:"gt=0"`
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port     string
	Database DatabaseConfig
	Storage  StorageConfig
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads configuration from environment variables and validates it eagerly,
// so a missing required value aborts startup instead of failing mid-request.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		Port: getEnv("PORT", "8080"), // default only for non-sensitive value
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		Storage: StorageConfig{
			Endpoint:          getEnv("STORAGE_ENDPOINT", ""),
			AccessKey:         getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey:         getEnv("STORAGE_SECRET_KEY", ""),
			CredentialsFile:   getEnv("STORAGE_CREDENTIALS_FILE", ""),
			Bucket:            getEnv("STORAGE_BUCKET", ""),
			UseSSL:            getEnvBool("STORAGE_USE_SSL", false),
			DownloadURLTTLMin: getEnvInt("DOWNLOAD_URL_TTL_MIN", 15),
		},
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
