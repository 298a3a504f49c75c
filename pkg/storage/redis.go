package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/platinummonkey/regstats/pkg/observability"
)

// RedisCounterStore reads download counters from Redis
type RedisCounterStore struct {
	client  *redis.Client
	metrics *observability.Metrics
}

// NewRedisCounterStore creates a counter store from config. No connection is made until the
// first read, so the service can start while Redis is down.
func NewRedisCounterStore(config Config) (*RedisCounterStore, error) {
	opts, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	if config.RedisPassword != "" {
		opts.Password = config.RedisPassword
	}
	if config.RedisDB >= 0 {
		opts.DB = config.RedisDB
	}
	if config.RedisPoolSize > 0 {
		opts.PoolSize = config.RedisPoolSize
	}
	if config.RedisDialTimeout > 0 {
		opts.DialTimeout = config.RedisDialTimeout
	}
	if config.RedisReadTimeout > 0 {
		opts.ReadTimeout = config.RedisReadTimeout
	}
	if config.RedisWriteTimeout > 0 {
		opts.WriteTimeout = config.RedisWriteTimeout
	}

	// reads are never retried
	opts.MaxRetries = -1

	return NewRedisCounterStoreFromClient(redis.NewClient(opts)), nil
}

// NewRedisCounterStoreFromClient wraps an existing client
func NewRedisCounterStoreFromClient(client *redis.Client) *RedisCounterStore {
	return &RedisCounterStore{client: client}
}

// WithMetrics records every command on m
func (s *RedisCounterStore) WithMetrics(m *observability.Metrics) *RedisCounterStore {
	s.metrics = m
	return s
}

// GetScalar returns the counter stored at key, or 0 if the key does not exist
func (s *RedisCounterStore) GetScalar(ctx context.Context, key string) (int64, error) {
	start := time.Now()
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		s.metrics.ObserveCounterCommand("get", start, nil)
		return 0, nil
	}
	s.metrics.ObserveCounterCommand("get", start, err)
	if err != nil {
		return 0, fmt.Errorf("redis get %s failed: %w", key, err)
	}

	return parseCounter(val), nil
}

// GetBatch fetches every key with a single MGET. Missing keys read as 0.
func (s *RedisCounterStore) GetBatch(ctx context.Context, keys []string) ([]int64, error) {
	if len(keys) == 0 {
		return []int64{}, nil
	}

	start := time.Now()
	vals, err := s.client.MGet(ctx, keys...).Result()
	s.metrics.ObserveCounterCommand("mget", start, err)
	if err != nil {
		return nil, fmt.Errorf("redis mget of %d keys failed: %w", len(keys), err)
	}
	if s.metrics != nil {
		s.metrics.CounterStoreBatchKeys.Observe(float64(len(keys)))
	}

	counts := make([]int64, len(vals))
	for i, v := range vals {
		counts[i] = parseCounter(v)
	}
	return counts, nil
}

// parseCounter converts a raw Redis value into a count; nil and non-numeric values are 0
func parseCounter(v interface{}) int64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Ping checks Redis connectivity
func (s *RedisCounterStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Client returns the underlying Redis client for health checks
func (s *RedisCounterStore) Client() *redis.Client {
	return s.client
}

// Close closes the Redis connection
func (s *RedisCounterStore) Close() error {
	return s.client.Close()
}
