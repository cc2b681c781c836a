package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Backend   BackendConfig
	Storage   StorageConfig
	Database  DatabaseConfig
	Directory DirectoryConfig
	Tickets   TicketConfig
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// BackendConfig holds connection settings for the remote timesheet backend
type BackendConfig struct {
	BaseURL        string
	Token          string
	Timeout        time.Duration
	PaymentTimeout time.Duration
}

type StorageConfig struct {
	Type     string // "file" or "postgres"
	BasePath string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

type DirectoryConfig struct {
	MinBusy time.Duration
}

type TicketConfig struct {
	BaseURL string
}

func Load() (*Config, error) {
	// Missing .env is fine in production, env vars take over.
	_ = godotenv.Load()

	config := &Config{}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
	}

	backendTimeout, err := time.ParseDuration(getEnv("BACKEND_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid BACKEND_TIMEOUT: %w", err)
	}
	paymentTimeout, err := time.ParseDuration(getEnv("PAYMENT_TIMEOUT", "20s"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYMENT_TIMEOUT: %w", err)
	}

	config.Backend = BackendConfig{
		BaseURL:        strings.TrimRight(getEnv("API_URL", "http://localhost:3000"), "/"),
		Token:          getEnv("API_TOKEN", ""),
		Timeout:        backendTimeout,
		PaymentTimeout: paymentTimeout,
	}

	config.Storage = StorageConfig{
		Type:     getEnv("STORAGE_TYPE", "file"),
		BasePath: getEnv("STORAGE_BASE_PATH", "./data"),
	}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "timesheet-core"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	minBusy, err := time.ParseDuration(getEnv("DIRECTORY_MIN_BUSY", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DIRECTORY_MIN_BUSY: %w", err)
	}
	config.Directory = DirectoryConfig{MinBusy: minBusy}

	config.Tickets = TicketConfig{
		BaseURL: getEnv("TICKET_BASE_URL", "https://pegadaian.atlassian.net/browse/"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("API_URL is required")
	}
	switch c.Storage.Type {
	case "file":
		if c.Storage.BasePath == "" {
			return fmt.Errorf("STORAGE_BASE_PATH is required for file storage")
		}
	case "postgres":
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required for postgres storage")
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}
	if c.Tickets.BaseURL == "" {
		return fmt.Errorf("TICKET_BASE_URL is required")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
