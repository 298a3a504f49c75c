package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/platinummonkey/regstats/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigurePool(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	config := storage.DefaultConfig()
	config.PostgresMaxConns = 7

	configurePool(db, config)

	assert.Equal(t, 7, db.Stats().MaxOpenConnections)
}

func TestOpen_Unreachable(t *testing.T) {
	config := storage.DefaultConfig()
	config.PostgresURL = "postgres://127.0.0.1:1/registry?sslmode=disable&connect_timeout=1"
	config.PostgresTimeout = 2 * time.Second

	db, err := Open(context.Background(), config)

	assert.Nil(t, db)
	assert.ErrorContains(t, err, "failed to ping postgres")
}
