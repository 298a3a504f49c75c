package storage

import "time"

// Config for the aggregate source database and the counter store
type Config struct {
	// PostgreSQL config
	PostgresURL         string
	PostgresMaxConns    int
	PostgresMinConns    int
	PostgresTimeout     time.Duration
	PostgresMaxLifetime time.Duration

	// Redis config
	RedisURL          string
	RedisPassword     string
	RedisDB           int
	RedisPoolSize     int
	RedisDialTimeout  time.Duration
	RedisReadTimeout  time.Duration
	RedisWriteTimeout time.Duration
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		PostgresURL:         "postgres://localhost/registry?sslmode=disable",
		PostgresMaxConns:    20,
		PostgresMinConns:    2,
		PostgresTimeout:     10 * time.Second,
		PostgresMaxLifetime: 30 * time.Minute,
		RedisURL:            "redis://localhost:6379/0",
		RedisDB:             -1,
		RedisPoolSize:       10,
		RedisDialTimeout:    2 * time.Second,
		RedisReadTimeout:    1 * time.Second,
		RedisWriteTimeout:   1 * time.Second,
	}
}
