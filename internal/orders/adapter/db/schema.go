package db

import (
	"context"
	"fmt"

	"order-tracker/internal/orders/app/core"
)

// Timestamps are stored as text in the canonical layout on purpose: clients
// may submit their own creation time and it must round-trip verbatim.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS orders (
		id                 SERIAL PRIMARY KEY,
		custom_order_id    TEXT NOT NULL UNIQUE,
		waiter             TEXT NOT NULL,
		customer           TEXT NOT NULL DEFAULT '',
		items              TEXT NOT NULL,
		status             TEXT NOT NULL DEFAULT 'NEW',
		payment_status     TEXT NOT NULL DEFAULT 'UNPAID',
		"time"             TEXT NOT NULL,
		completion_time    TEXT,
		time_taken_minutes INTEGER,
		day_of_week        INTEGER
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders (status)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_time_date ON orders ((substr("time", 1, 10)))`,
}

// EnsureSchema provisions the orders table at server start.
func EnsureSchema(ctx context.Context, database core.IDB) error {
	for _, stmt := range schema {
		if _, err := database.GetPool().Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
