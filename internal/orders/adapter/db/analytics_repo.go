package db

import (
	"context"

	"order-tracker/internal/orders/app/core"
	"order-tracker/internal/orders/domain/models"
)

// AnalyticsRepo is the read-only aggregation surface over the orders table.
// The timestamps are fixed-layout text, so hour and date keys come from
// substr on the stored value, exactly as the lifecycle wrote it.
type AnalyticsRepo struct {
	ctx context.Context
	db  core.IDB
}

func NewAnalyticsRepo(ctx context.Context, db core.IDB) *AnalyticsRepo {
	return &AnalyticsRepo{
		ctx: ctx,
		db:  db,
	}
}

func (ar *AnalyticsRepo) HourBuckets(ctx context.Context) ([]models.HourBucket, error) {
	if err := ar.db.IsAlive(); err != nil {
		return nil, core.ErrDBConn
	}

	q := `
	SELECT
		substr("time", 12, 2) AS hour,
		COUNT(*),
		COALESCE(AVG(time_taken_minutes) FILTER (WHERE status = $1), 0)::float8
	FROM
		orders
	GROUP BY
		hour
	`
	rows, err := ar.db.GetPool().Query(ctx, q, models.StatusDone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buckets []models.HourBucket
	for rows.Next() {
		var b models.HourBucket
		if err := rows.Scan(&b.Hour, &b.Count, &b.AvgPrep); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

func (ar *AnalyticsRepo) DateBuckets(ctx context.Context, limit int) ([]models.DateBucket, error) {
	if err := ar.db.IsAlive(); err != nil {
		return nil, core.ErrDBConn
	}

	// Lexicographic order on the date prefix is chronological for the
	// canonical layout, so the most recent dates come first.
	q := `
	SELECT
		substr("time", 1, 10) AS day,
		COUNT(*),
		COALESCE(AVG(time_taken_minutes) FILTER (WHERE status = $1), 0)::float8
	FROM
		orders
	GROUP BY
		day
	ORDER BY
		day DESC
	LIMIT $2
	`
	rows, err := ar.db.GetPool().Query(ctx, q, models.StatusDone, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buckets []models.DateBucket
	for rows.Next() {
		var b models.DateBucket
		if err := rows.Scan(&b.Date, &b.Count, &b.AvgPrep); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

func (ar *AnalyticsRepo) WeekdayBuckets(ctx context.Context) ([]models.WeekdayBucket, error) {
	if err := ar.db.IsAlive(); err != nil {
		return nil, core.ErrDBConn
	}

	q := `SELECT day_of_week, COUNT(*) FROM orders GROUP BY day_of_week`
	rows, err := ar.db.GetPool().Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var buckets []models.WeekdayBucket
	for rows.Next() {
		var b models.WeekdayBucket
		if err := rows.Scan(&b.Day, &b.Count); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

func (ar *AnalyticsRepo) CompletedItemBlobs(ctx context.Context) ([]string, error) {
	if err := ar.db.IsAlive(); err != nil {
		return nil, core.ErrDBConn
	}

	q := `SELECT items FROM orders WHERE status = $1`
	rows, err := ar.db.GetPool().Query(ctx, q, models.StatusDone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blobs []string
	for rows.Next() {
		var blob string
		if err := rows.Scan(&blob); err != nil {
			return nil, err
		}
		blobs = append(blobs, blob)
	}
	return blobs, rows.Err()
}
