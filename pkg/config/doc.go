// Package config provides application configuration management from environment variables.
//
// # Overview
//
// This package loads and validates configuration from environment variables with
// defaults for every setting.
//
// # Configuration Structure
//
// Server settings:
//
//	REGSTATS_HOST="0.0.0.0"
//	REGSTATS_PORT="8080"
//	REGSTATS_HEALTH_PORT="9090"
//	REGSTATS_READ_TIMEOUT="15s"
//	REGSTATS_WRITE_TIMEOUT="15s"
//	REGSTATS_SHUTDOWN_TIMEOUT="30s"
//
// Storage settings:
//
//	REGSTATS_POSTGRES_URL="postgres://localhost/registry?sslmode=disable"
//	REGSTATS_POSTGRES_MAX_CONNS="20"
//	REGSTATS_REDIS_URL="redis://localhost:6379/0"
//	REGSTATS_REDIS_POOL_SIZE="10"
//	REGSTATS_REDIS_TIMEOUT="1s"
//
// Feature flags:
//
//	REGSTATS_KILLSWITCH_FILE="/etc/regstats/killswitch.yaml"
//
// Observability settings:
//
//	REGSTATS_LOG_LEVEL="info"  # debug, info, warn, error
//	REGSTATS_LOG_FORMAT="text" # text, json
//	REGSTATS_METRICS_ENABLED="true"
//	REGSTATS_OTEL_ENABLED="true"
//	REGSTATS_OTEL_ENDPOINT="otel-collector:4317"
//	REGSTATS_OTEL_ENVIRONMENT="production"
//	REGSTATS_OTEL_SAMPLE_RATIO="1.0" # 0..1, fraction of root traces kept
//
// # Usage Example
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Listening on %s\n", cfg.Server.ListenAddr())
//
// # Related Packages
//
//   - pkg/storage: Uses storage configuration
//   - pkg/observability: Uses observability configuration
package config
