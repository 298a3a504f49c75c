// Package storage connects the statistics engine to its backing stores.
//
// RedisCounterStore implements stats.CounterStore on top of go-redis: single keys are read
// with GET and chart key lists with one MGET per chart. Missing keys read as 0. The client is
// configured never to retry, so a Redis outage fails fast and the dashboard degrades.
//
// The postgres subpackage implements stats.Source, the per-month aggregate queries over the
// packages and versions tables.
package storage
