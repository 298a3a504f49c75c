package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/platinummonkey/regstats/pkg/storage"
)

// Open connects to PostgreSQL, configures the pool and verifies the connection
func Open(ctx context.Context, config storage.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", config.PostgresURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	configurePool(db, config)

	pingCtx, cancel := context.WithTimeout(ctx, config.PostgresTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	return db, nil
}

func configurePool(db *sql.DB, config storage.Config) {
	if config.PostgresMaxConns > 0 {
		db.SetMaxOpenConns(config.PostgresMaxConns)
	}
	if config.PostgresMinConns > 0 {
		db.SetMaxIdleConns(config.PostgresMinConns)
	}
	if config.PostgresMaxLifetime > 0 {
		db.SetConnMaxLifetime(config.PostgresMaxLifetime)
	}
}
