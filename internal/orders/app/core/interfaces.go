package core

import (
	"context"

	"order-tracker/internal/orders/domain/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type IDB interface {
	GetPool() *pgxpool.Pool
	IsAlive() error
	Close() error
}

// IOrderRepo owns every statement that touches order rows for the lifecycle
// flow. Create assigns both the primary key and the daily custom order id.
type IOrderRepo interface {
	Create(ctx context.Context, order models.Order) (models.Order, error)
	ListOpen(ctx context.Context) ([]models.Order, error)
	Complete(ctx context.Context, orderID int) (models.Order, error)
	Delete(ctx context.Context, orderID int) (models.Order, error)
	ListCompleted(ctx context.Context, todayOnly bool) ([]models.Order, error)
	CompletedStats(ctx context.Context, todayOnly bool) (models.CompletedStats, error)
	ResetCompleted(ctx context.Context) (int64, error)
	ResetAll(ctx context.Context) (int64, error)
}

// IAnalyticsRepo is the read-only aggregation surface over the same table.
type IAnalyticsRepo interface {
	HourBuckets(ctx context.Context) ([]models.HourBucket, error)
	DateBuckets(ctx context.Context, limit int) ([]models.DateBucket, error)
	WeekdayBuckets(ctx context.Context) ([]models.WeekdayBucket, error)
	CompletedItemBlobs(ctx context.Context) ([]string, error)
}
