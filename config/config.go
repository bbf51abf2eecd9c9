package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the complete application configuration
type Config struct {
	AppName       string
	Environment   string
	Server        ServerConfig
	Database      DatabaseConfig
	AI            AIConfig
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL configuration. When URL is empty the
// service runs with the stub data-access layer.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Configured reports whether a database was configured at all.
func (d DatabaseConfig) Configured() bool {
	return d.URL != ""
}

// LogString returns the connection target with credentials stripped.
func (d DatabaseConfig) LogString() string {
	parsed, err := url.Parse(d.URL)
	if err != nil {
		return "postgres"
	}
	return parsed.Host + parsed.Path
}

// AIConfig holds summarization settings
type AIConfig struct {
	SummaryModel     string
	MaxSummaryLength int
	MaxKeywords      int
}

// ObservabilityConfig holds logging and metrics configuration
type ObservabilityConfig struct {
	LogLevel      string
	LogFormat     string // json or console
	ExcludedPaths []string
}

// New creates a new Config instance by loading environment variables
func New() (*Config, error) {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getEnv("APP_NAME", "linkyboard-api"),
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		AI: AIConfig{
			SummaryModel:     getEnv("SUMMARY_MODEL", "gpt-4o-mini"),
			MaxSummaryLength: getEnvAsInt("MAX_SUMMARY_LENGTH", 500),
			MaxKeywords:      getEnvAsInt("MAX_KEYWORDS", 5),
		},
		Observability: ObservabilityConfig{
			LogLevel:      getEnv("LOG_LEVEL", "info"),
			LogFormat:     getEnv("LOG_FORMAT", "json"),
			ExcludedPaths: getEnvAsSlice("CORRELATION_EXCLUDED_PATHS", []string{"/health", "/metrics", "/favicon.ico"}),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if all required configuration fields are set
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Observability.LogLevel == "" {
		return fmt.Errorf("log level is required")
	}
	if c.AI.SummaryModel == "" {
		return fmt.Errorf("summary model is required")
	}
	if c.AI.MaxKeywords <= 0 {
		return fmt.Errorf("max keywords must be positive")
	}
	if c.IsProduction() && !c.Database.Configured() {
		return fmt.Errorf("DATABASE_URL is required in production")
	}
	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Addr returns the host:port the server binds to
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvAsInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvAsDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvAsSlice(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
