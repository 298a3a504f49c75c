package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/platinummonkey/regstats/pkg/observability"
	"github.com/platinummonkey/regstats/pkg/storage"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Storage configuration
	Storage storage.Config

	// Killswitch file; empty means every feature is enabled
	KillswitchFile string

	// Observability configuration
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Health/metrics server (separate port for k8s probes)
	HealthPort string
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	// Logging
	LogLevel  string
	LogFormat string

	// Metrics
	MetricsEnabled bool

	// OpenTelemetry
	OTel observability.OTelConfig
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server:         loadServerConfig(),
		Storage:        loadStorageConfig(),
		KillswitchFile: getEnv("REGSTATS_KILLSWITCH_FILE", ""),
		Observability:  loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadServerConfig loads server configuration from environment
func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnv("REGSTATS_HOST", "0.0.0.0"),
		Port:            getEnv("REGSTATS_PORT", "8080"),
		ReadTimeout:     getEnvDuration("REGSTATS_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("REGSTATS_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getEnvDuration("REGSTATS_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("REGSTATS_SHUTDOWN_TIMEOUT", 30*time.Second),
		HealthPort:      getEnv("REGSTATS_HEALTH_PORT", "9090"),
	}
}

// loadStorageConfig loads storage configuration from environment
func loadStorageConfig() storage.Config {
	cfg := storage.DefaultConfig()

	// PostgreSQL config
	if pgURL := getEnv("REGSTATS_POSTGRES_URL", ""); pgURL != "" {
		cfg.PostgresURL = pgURL
	}
	if maxConns := getEnvInt("REGSTATS_POSTGRES_MAX_CONNS", 0); maxConns > 0 {
		cfg.PostgresMaxConns = maxConns
	}
	if minConns := getEnvInt("REGSTATS_POSTGRES_MIN_CONNS", 0); minConns > 0 {
		cfg.PostgresMinConns = minConns
	}
	if timeout := getEnvDuration("REGSTATS_POSTGRES_TIMEOUT", 0); timeout > 0 {
		cfg.PostgresTimeout = timeout
	}

	// Redis config
	if redisURL := getEnv("REGSTATS_REDIS_URL", ""); redisURL != "" {
		cfg.RedisURL = redisURL
	}
	if redisPassword := getEnv("REGSTATS_REDIS_PASSWORD", ""); redisPassword != "" {
		cfg.RedisPassword = redisPassword
	}
	if redisDB := getEnvInt("REGSTATS_REDIS_DB", -1); redisDB >= 0 {
		cfg.RedisDB = redisDB
	}
	if redisPoolSize := getEnvInt("REGSTATS_REDIS_POOL_SIZE", 0); redisPoolSize > 0 {
		cfg.RedisPoolSize = redisPoolSize
	}
	// one timeout bounds dialing and every command
	if redisTimeout := getEnvDuration("REGSTATS_REDIS_TIMEOUT", 0); redisTimeout > 0 {
		cfg.RedisDialTimeout = redisTimeout
		cfg.RedisReadTimeout = redisTimeout
		cfg.RedisWriteTimeout = redisTimeout
	}

	return cfg
}

// loadObservabilityConfig loads observability configuration from environment
func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:       strings.ToLower(getEnv("REGSTATS_LOG_LEVEL", "info")),
		LogFormat:      strings.ToLower(getEnv("REGSTATS_LOG_FORMAT", "text")),
		MetricsEnabled: getEnvBool("REGSTATS_METRICS_ENABLED", true),
		OTel: observability.OTelConfig{
			Enabled:        getEnvBool("REGSTATS_OTEL_ENABLED", false),
			Endpoint:       getEnv("REGSTATS_OTEL_ENDPOINT", "localhost:4317"),
			ServiceName:    getEnv("REGSTATS_OTEL_SERVICE_NAME", "regstats"),
			ServiceVersion: getEnv("REGSTATS_OTEL_SERVICE_VERSION", "1.0.0"),
			Environment:    getEnv("REGSTATS_OTEL_ENVIRONMENT", "production"),
			Insecure:       getEnvBool("REGSTATS_OTEL_INSECURE", true),
			SampleRatio:    getEnvFloat("REGSTATS_OTEL_SAMPLE_RATIO", 1.0),
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate server config
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.HealthPort == "" {
		return fmt.Errorf("health port is required")
	}
	if c.Server.Port == c.Server.HealthPort {
		return fmt.Errorf("server port and health port must be different")
	}

	// Validate storage config
	if c.Storage.PostgresURL == "" {
		return fmt.Errorf("postgres URL is required")
	}
	if c.Storage.RedisURL == "" {
		return fmt.Errorf("redis URL is required")
	}
	if c.Storage.PostgresMinConns > c.Storage.PostgresMaxConns {
		return fmt.Errorf("postgres min conns (%d) exceeds max conns (%d)", c.Storage.PostgresMinConns, c.Storage.PostgresMaxConns)
	}

	switch c.Observability.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s (must be text or json)", c.Observability.LogFormat)
	}

	// Validate OpenTelemetry config
	if c.Observability.OTel.Enabled {
		if c.Observability.OTel.Endpoint == "" {
			return fmt.Errorf("OpenTelemetry endpoint is required when OTel is enabled")
		}
		if c.Observability.OTel.ServiceName == "" {
			return fmt.Errorf("OpenTelemetry service name is required when OTel is enabled")
		}
		if ratio := c.Observability.OTel.SampleRatio; ratio < 0 || ratio > 1 {
			return fmt.Errorf("invalid OpenTelemetry sample ratio: %v (must be between 0 and 1)", ratio)
		}
	}

	return nil
}

// ListenAddr returns the host:port the API server binds to
func (s ServerConfig) ListenAddr() string {
	return s.Host + ":" + s.Port
}

// HealthAddr returns the host:port the health and metrics server binds to
func (s ServerConfig) HealthAddr() string {
	return s.Host + ":" + s.HealthPort
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvFloat returns a float environment variable or a default
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
