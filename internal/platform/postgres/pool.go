// Copyright (c) 2026 Agrio India. All rights reserved.

// Package postgres owns the pgx connection pool shared by every
// repository in the application.
//
// # Architecture
//
// Infrastructure layer. Only the physical pool lives here; the
// repositories that speak SQL sit next to their domains and receive
// the pool at construction.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agrioindia/platform/internal/platform/constants"
)

// Pool tuning for the Agrio workload: catalog reads dominate, writes
// are the occasional profile update or coupon scan.
const (
	// maxConns caps the pool; beyond this requests queue.
	maxConns = 25
	// minConns keeps a warm floor so the first request after a lull
	// does not pay connection setup.
	minConns = 5
	// maxConnLifetime recycles connections to pick up failovers.
	maxConnLifetime = 60 * time.Minute
	// maxConnIdleTime closes connections that have sat unused.
	maxConnIdleTime = 10 * time.Minute
	// healthCheckPeriod is how often the pool probes idle connections.
	healthCheckPeriod = 1 * time.Minute
	// connectTimeout bounds establishing a new physical connection.
	connectTimeout = 5 * time.Second
	// pingTimeout bounds a single health-check ping.
	pingTimeout = 2 * time.Second
)

// NewPool creates and validates a new PostgreSQL connection pool.
//
// # Parameters
//   - ctx: Context for the initial connection attempt.
//   - dsn: A libpq-compatible connection string or postgres:// URL.
//   - logger: Structured logger for pool-level events.
func NewPool(ctx context.Context, dsn string, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: invalid DSN: %w", err)
	}

	poolConfig.MaxConns = maxConns
	poolConfig.MinConns = minConns
	poolConfig.MaxConnLifetime = maxConnLifetime
	poolConfig.MaxConnIdleTime = maxConnIdleTime
	poolConfig.HealthCheckPeriod = healthCheckPeriod
	poolConfig.ConnConfig.ConnectTimeout = connectTimeout

	// Runs once per new physical connection. A server-side statement
	// timeout matched to the request deadline keeps a slow query from
	// outliving the request that issued it.
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		timeoutQuery := fmt.Sprintf("SET statement_timeout = '%ds'", int(constants.GlobalRequestTimeout.Seconds()))
		_, err := conn.Exec(ctx, timeoutQuery)
		return err
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to create pool: %w", err)
	}

	// Fail boot early if the database is unreachable.
	if err := Ping(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	stats := pool.Stat()
	logger.Info("postgres pool connected",
		slog.Int("max_conns", int(stats.MaxConns())),
		slog.Int("total_conns", int(stats.TotalConns())),
	)

	return pool, nil
}

// Ping verifies that the PostgreSQL connection pool is healthy.
func Ping(ctx context.Context, pool *pgxpool.Pool) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		return fmt.Errorf("postgres: ping failed: %w", err)
	}

	return nil
}
