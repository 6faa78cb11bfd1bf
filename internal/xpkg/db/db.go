package db

import (
	"context"
	"fmt"

	"order-tracker/internal/xpkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

type DB struct {
	ctx  context.Context
	pool *pgxpool.Pool
}

// Start initializes a connection pool and verifies it with a ping.
func Start(ctx context.Context, dbCfg *config.Postgres) (*DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbCfg.User,
		dbCfg.Password,
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.Database,
	)

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{
		ctx:  ctx,
		pool: pool,
	}, nil
}

func (d *DB) GetPool() *pgxpool.Pool {
	return d.pool
}

// IsAlive pings the pool to verify it's responsive.
func (d *DB) IsAlive() error {
	if d.pool == nil {
		return fmt.Errorf("DB is not initialized")
	}
	if err := d.pool.Ping(d.ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	return nil
}

// Close releases the pool. Safe to call once at shutdown.
func (d *DB) Close() error {
	if d.pool != nil {
		d.pool.Close()
	}
	return nil
}
