package db

import (
	"context"
	"errors"
	"fmt"

	"order-tracker/internal/orders/app/core"
	"order-tracker/internal/orders/domain/models"
	"order-tracker/internal/xpkg/clock"

	"github.com/jackc/pgx/v5"
)

const orderColumns = `
	id,
	custom_order_id,
	waiter,
	customer,
	items,
	status,
	payment_status,
	"time",
	completion_time,
	time_taken_minutes,
	day_of_week
`

type OrderRepo struct {
	ctx context.Context
	db  core.IDB
	clk *clock.Clock
}

func NewOrderRepo(ctx context.Context, db core.IDB, clk *clock.Clock) *OrderRepo {
	return &OrderRepo{
		ctx: ctx,
		db:  db,
		clk: clk,
	}
}

// Create assigns the daily sequential custom order id and inserts the row in
// one transaction. An advisory lock on the id date serializes concurrent
// creations, so two orders can never count the same sequence slot.
func (or *OrderRepo) Create(ctx context.Context, order models.Order) (models.Order, error) {
	if err := or.db.IsAlive(); err != nil {
		return models.Order{}, core.ErrDBConn
	}

	now := or.clk.Now()

	tx, err := or.db.GetPool().Begin(ctx)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1))`,
		"order_seq_"+now.Format(clock.IDDateLayout),
	)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to lock order sequence: %w", err)
	}

	// Count today's orders by the date prefix of the stored creation time.
	var orderCount int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE substr("time", 1, 10) = $1`,
		now.Format(clock.DateLayout),
	).Scan(&orderCount)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to count today's orders: %w", err)
	}

	order.CustomOrderID = core.CustomOrderID(now, orderCount+1)

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (
			custom_order_id,
			waiter,
			customer,
			items,
			status,
			payment_status,
			"time",
			day_of_week
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`,
		order.CustomOrderID,
		order.Waiter,
		order.Customer,
		order.Items,
		order.Status,
		order.PaymentStatus,
		order.Time,
		order.DayOfWeek,
	).Scan(&order.ID)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Order{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return order, nil
}

func (or *OrderRepo) ListOpen(ctx context.Context) ([]models.Order, error) {
	if err := or.db.IsAlive(); err != nil {
		return nil, core.ErrDBConn
	}

	q := `SELECT ` + orderColumns + ` FROM orders WHERE status = $1 ORDER BY id`
	rows, err := or.db.GetPool().Query(ctx, q, models.StatusNew)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

// Complete stamps the completion time, derives the whole-minute duration from
// the stored creation time and flips the status, all in one update. Read and
// update share a transaction so the duration is computed against the row that
// is actually updated.
func (or *OrderRepo) Complete(ctx context.Context, orderID int) (models.Order, error) {
	if err := or.db.IsAlive(); err != nil {
		return models.Order{}, core.ErrDBConn
	}

	tx, err := or.db.GetPool().Begin(ctx)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	q := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`
	row := tx.QueryRow(ctx, q, orderID)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Order{}, core.ErrOrderNotFound
		}
		return models.Order{}, err
	}

	completed := or.clk.Now()
	completionTime := completed.Format(clock.TimeLayout)
	minutes := core.MinutesBetween(order.Time, completed)

	_, err = tx.Exec(ctx, `
		UPDATE orders
		SET status = $2, completion_time = $3, time_taken_minutes = $4
		WHERE id = $1
	`, orderID, models.StatusDone, completionTime, minutes)
	if err != nil {
		return models.Order{}, fmt.Errorf("failed to complete order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Order{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	order.Status = models.StatusDone
	order.CompletionTime = &completionTime
	order.TimeTakenMinutes = &minutes
	return order, nil
}

// Delete hard-deletes the row and returns its identity snapshot.
func (or *OrderRepo) Delete(ctx context.Context, orderID int) (models.Order, error) {
	if err := or.db.IsAlive(); err != nil {
		return models.Order{}, core.ErrDBConn
	}

	var order models.Order
	err := or.db.GetPool().QueryRow(ctx, `
		DELETE FROM orders WHERE id = $1
		RETURNING id, custom_order_id, waiter
	`, orderID).Scan(&order.ID, &order.CustomOrderID, &order.Waiter)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Order{}, core.ErrOrderNotFound
		}
		return models.Order{}, err
	}

	return order, nil
}

func (or *OrderRepo) ListCompleted(ctx context.Context, todayOnly bool) ([]models.Order, error) {
	if err := or.db.IsAlive(); err != nil {
		return nil, core.ErrDBConn
	}

	q := `SELECT ` + orderColumns + ` FROM orders WHERE status = $1`
	args := []any{models.StatusDone}
	if todayOnly {
		q += ` AND substr(completion_time, 1, 10) = $2`
		args = append(args, or.clk.Today())
	}
	q += ` ORDER BY id`

	rows, err := or.db.GetPool().Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (or *OrderRepo) CompletedStats(ctx context.Context, todayOnly bool) (models.CompletedStats, error) {
	if err := or.db.IsAlive(); err != nil {
		return models.CompletedStats{}, core.ErrDBConn
	}

	q := `
		SELECT COUNT(*), COALESCE(AVG(time_taken_minutes), 0)::float8
		FROM orders
		WHERE status = $1
	`
	args := []any{models.StatusDone}
	if todayOnly {
		q += ` AND substr(completion_time, 1, 10) = $2`
		args = append(args, or.clk.Today())
	}

	var stats models.CompletedStats
	err := or.db.GetPool().QueryRow(ctx, q, args...).Scan(&stats.Count, &stats.AvgMinutes)
	if err != nil {
		return models.CompletedStats{}, err
	}
	return stats, nil
}

func (or *OrderRepo) ResetCompleted(ctx context.Context) (int64, error) {
	if err := or.db.IsAlive(); err != nil {
		return 0, core.ErrDBConn
	}

	tag, err := or.db.GetPool().Exec(ctx, `DELETE FROM orders WHERE status = $1`, models.StatusDone)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (or *OrderRepo) ResetAll(ctx context.Context) (int64, error) {
	if err := or.db.IsAlive(); err != nil {
		return 0, core.ErrDBConn
	}

	tag, err := or.db.GetPool().Exec(ctx, `DELETE FROM orders`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanOrder(row pgx.Row) (models.Order, error) {
	var order models.Order
	err := row.Scan(
		&order.ID,
		&order.CustomOrderID,
		&order.Waiter,
		&order.Customer,
		&order.Items,
		&order.Status,
		&order.PaymentStatus,
		&order.Time,
		&order.CompletionTime,
		&order.TimeTakenMinutes,
		&order.DayOfWeek,
	)
	return order, err
}

func scanOrders(rows pgx.Rows) ([]models.Order, error) {
	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
