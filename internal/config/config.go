package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	// EnvironmentVar is the environment variable reported by the health endpoint
	EnvironmentVar = "ENVIRONMENT"
	// DefaultEnvironment is used when ENVIRONMENT is unset
	DefaultEnvironment = "development"
	// ProductionEnvironment selects JSON logging
	ProductionEnvironment = "production"

	// ServiceName identifies this service in health responses and traces
	ServiceName = "bookmark-manager-api"

	// Wildcard allows any method or header in the CORS policy
	Wildcard = "*"
)

// Metadata describes the API in responses and in the OpenAPI document
type Metadata struct {
	Title       string
	Description string
	Version     string
}

// DefaultMetadata returns the metadata the service is published under
func DefaultMetadata() Metadata {
	return Metadata{
		Title:       "Bookmark Manager API",
		Description: "A personal bookmark manager API",
		Version:     "1.0.0",
	}
}

// CORS holds the cross-origin policy applied to every route
type CORS struct {
	AllowedOrigins   []string
	AllowCredentials bool
	AllowedMethods   []string
	AllowedHeaders   []string
	MaxAge           int
}

// Config holds application configuration
type Config struct {
	Environment     string
	ServerHost      string
	ServerPort      string
	CORS            CORS
	EnableHSTS      bool
	ServerDebugMode bool
	MetricsEnabled  bool
	MetricsPath     string
	OTELEnabled     bool
	OTELEndpoint    string
	// OTELInsecure sends spans over plain HTTP instead of TLS
	OTELInsecure    bool
	ShutdownTimeout time.Duration
}

// Addr returns the host:port pair the server binds to
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	shutdownTimeout, err := getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	maxAge, err := getEnvInt("CORS_MAX_AGE", 600)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Environment: Environment(),
		ServerHost:  getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort:  getEnv("SERVER_PORT", "8000"),
		CORS: CORS{
			AllowedOrigins:   getEnvList("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8080"),
			AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", true),
			AllowedMethods:   getEnvList("CORS_ALLOWED_METHODS", Wildcard),
			AllowedHeaders:   getEnvList("CORS_ALLOWED_HEADERS", Wildcard),
			MaxAge:           maxAge,
		},
		EnableHSTS:      getEnvBool("ENABLE_HSTS", false),
		ServerDebugMode: getEnvBool("SERVER_DEBUG_MODE", false),
		MetricsEnabled:  getEnvBool("METRICS_ENABLED", true),
		MetricsPath:     getEnv("METRICS_PATH", "/metrics"),
		OTELEnabled:     getEnvBool("OTEL_ENABLED", false),
		OTELEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTELInsecure:    getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		ShutdownTimeout: shutdownTimeout,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that cannot be corrected with a default
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.ServerPort)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("SERVER_PORT must be a number between 1 and 65535, got %q", c.ServerPort)
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS must list at least one origin")
	}

	if c.CORS.MaxAge < 0 {
		return fmt.Errorf("CORS_MAX_AGE must not be negative, got %d", c.CORS.MaxAge)
	}

	if c.MetricsEnabled && !strings.HasPrefix(c.MetricsPath, "/") {
		return fmt.Errorf("METRICS_PATH must start with '/', got %q", c.MetricsPath)
	}

	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}

	return nil
}

// Environment returns the current deployment environment.
// It reads the process environment on every call so callers observe changes.
func Environment() string {
	return getEnv(EnvironmentVar, DefaultEnvironment)
}

// ExpandMethods resolves a wildcard entry to every standard HTTP method
func ExpandMethods(methods []string) []string {
	for _, m := range methods {
		if m == Wildcard {
			return []string{
				http.MethodGet,
				http.MethodHead,
				http.MethodPost,
				http.MethodPut,
				http.MethodPatch,
				http.MethodDelete,
				http.MethodConnect,
				http.MethodOptions,
				http.MethodTrace,
			}
		}
	}
	out := make([]string, 0, len(methods))
	for _, m := range methods {
		out = append(out, strings.ToUpper(m))
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return intValue, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// getEnvList parses a comma-separated variable, trimming blanks and dropping duplicates
func getEnvList(key, defaultValue string) []string {
	return splitList(getEnv(key, defaultValue))
}

func splitList(raw string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
