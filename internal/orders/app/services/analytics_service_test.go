package services

import (
	"context"
	"testing"

	"order-tracker/internal/mylogger"
	"order-tracker/internal/orders/domain/dto"
	"order-tracker/internal/orders/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyticsRepo struct {
	hours    []models.HourBucket
	dates    []models.DateBucket
	weekdays []models.WeekdayBucket
	blobs    []string
	err      error
}

func (f *fakeAnalyticsRepo) HourBuckets(context.Context) ([]models.HourBucket, error) {
	return f.hours, f.err
}

func (f *fakeAnalyticsRepo) DateBuckets(context.Context, int) ([]models.DateBucket, error) {
	return f.dates, f.err
}

func (f *fakeAnalyticsRepo) WeekdayBuckets(context.Context) ([]models.WeekdayBucket, error) {
	return f.weekdays, f.err
}

func (f *fakeAnalyticsRepo) CompletedItemBlobs(context.Context) ([]string, error) {
	return f.blobs, f.err
}

func newTestAnalyticsService(repo *fakeAnalyticsRepo) *AnalyticsService {
	return NewAnalyticsService(context.Background(), repo, mylogger.New("test", "ERROR"))
}

func intPtr(v int) *int { return &v }

func TestHourlyTrendsZeroFill(t *testing.T) {
	svc := newTestAnalyticsService(&fakeAnalyticsRepo{})

	trends, err := svc.HourlyTrends(context.Background())
	require.NoError(t, err)
	require.Len(t, trends, 24)

	assert.Equal(t, "00", trends[0].Hour)
	assert.Equal(t, "23", trends[23].Hour)
	for _, trend := range trends {
		assert.Zero(t, trend.OrderCount)
		assert.Zero(t, trend.AvgPreparationTime)
	}
}

func TestHourlyTrendsPlacementAndRounding(t *testing.T) {
	svc := newTestAnalyticsService(&fakeAnalyticsRepo{
		hours: []models.HourBucket{
			{Hour: "09", Count: 4, AvgPrep: 7.25},
			{Hour: "13", Count: 2, AvgPrep: 0},
		},
	})

	trends, err := svc.HourlyTrends(context.Background())
	require.NoError(t, err)
	require.Len(t, trends, 24)

	assert.Equal(t, 4, trends[9].OrderCount)
	assert.Equal(t, 7.3, trends[9].AvgPreparationTime)

	// An hour with orders but no DONE ones reports a zero average, not null.
	assert.Equal(t, 2, trends[13].OrderCount)
	assert.Zero(t, trends[13].AvgPreparationTime)

	assert.Zero(t, trends[10].OrderCount)
}

func TestDailyVolume(t *testing.T) {
	svc := newTestAnalyticsService(&fakeAnalyticsRepo{
		dates: []models.DateBucket{
			{Date: "2024-06-04", Count: 10, AvgPrep: 12.34},
			{Date: "2024-06-03", Count: 7, AvgPrep: 0},
		},
	})

	volume, err := svc.DailyVolume(context.Background())
	require.NoError(t, err)
	require.Len(t, volume, 2)

	assert.Equal(t, "2024-06-04", volume[0].Date)
	assert.Equal(t, 12.3, volume[0].AvgCompletionTime)
	assert.Equal(t, 7, volume[1].OrderCount)
}

func TestBusyHoursRankingAndTieBreak(t *testing.T) {
	svc := newTestAnalyticsService(&fakeAnalyticsRepo{
		hours: []models.HourBucket{
			{Hour: "12", Count: 5},
			{Hour: "09", Count: 5},
			{Hour: "07", Count: 3},
			{Hour: "18", Count: 9},
			{Hour: "xx", Count: 99}, // verbatim client timestamp debris
		},
	})

	busy, err := svc.BusyHours(context.Background())
	require.NoError(t, err)
	require.Len(t, busy, 4)

	assert.Equal(t, []dto.BusyHour{
		{Hour: "18", OrderCount: 9},
		{Hour: "09", OrderCount: 5},
		{Hour: "12", OrderCount: 5},
		{Hour: "07", OrderCount: 3},
	}, busy)
}

func TestBusyHoursCapsAtFive(t *testing.T) {
	svc := newTestAnalyticsService(&fakeAnalyticsRepo{
		hours: []models.HourBucket{
			{Hour: "08", Count: 8},
			{Hour: "09", Count: 7},
			{Hour: "10", Count: 6},
			{Hour: "11", Count: 5},
			{Hour: "12", Count: 4},
			{Hour: "13", Count: 3},
		},
	})

	busy, err := svc.BusyHours(context.Background())
	require.NoError(t, err)
	assert.Len(t, busy, 5)
	assert.Equal(t, "08", busy[0].Hour)
	assert.Equal(t, "12", busy[4].Hour)
}

func TestBusyDaysRanksAllWeekdays(t *testing.T) {
	svc := newTestAnalyticsService(&fakeAnalyticsRepo{
		weekdays: []models.WeekdayBucket{
			{Day: intPtr(2), Count: 5},
			{Day: intPtr(0), Count: 2},
		},
	})

	busy, err := svc.BusyDays(context.Background())
	require.NoError(t, err)
	require.Len(t, busy, 7)

	assert.Equal(t, dto.BusyDay{Day: "Tuesday", OrderCount: 5}, busy[0])
	assert.Equal(t, dto.BusyDay{Day: "Sunday", OrderCount: 2}, busy[1])
	// Remaining weekdays tie at zero and keep weekday order.
	assert.Equal(t, "Monday", busy[2].Day)
	assert.Equal(t, "Saturday", busy[6].Day)
}

func TestBusyDaysGroupsUnknown(t *testing.T) {
	svc := newTestAnalyticsService(&fakeAnalyticsRepo{
		weekdays: []models.WeekdayBucket{
			{Day: intPtr(1), Count: 1},
			{Day: nil, Count: 3},
		},
	})

	busy, err := svc.BusyDays(context.Background())
	require.NoError(t, err)
	require.Len(t, busy, 8)

	assert.Equal(t, dto.BusyDay{Day: "Unknown", OrderCount: 3}, busy[0])
	assert.Equal(t, dto.BusyDay{Day: "Monday", OrderCount: 1}, busy[1])
}

func TestPopularItemsSkipSemantics(t *testing.T) {
	svc := newTestAnalyticsService(&fakeAnalyticsRepo{
		blobs: []string{
			`not-json`,
			`[{"qty":2}]`,
			`[{"name":"Tea"},{"name":"Tea"}]`,
		},
	})

	resp, err := svc.PopularItems(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.PopularItems, 1)
	assert.Equal(t, "Tea", resp.PopularItems[0].Name)
	assert.Equal(t, 2, resp.PopularItems[0].Count)
	assert.Equal(t, 100.0, resp.PopularItems[0].Percentage)

	assert.Equal(t, 3, resp.TotalOrdersProcessed)
	assert.Equal(t, 2, resp.TotalItemsCounted)
	assert.GreaterOrEqual(t, resp.SkippedItems, 2)
}

func TestPopularItemsEmptyTally(t *testing.T) {
	svc := newTestAnalyticsService(&fakeAnalyticsRepo{
		blobs: []string{`not-json`, `{"name":"Tea"}`},
	})

	resp, err := svc.PopularItems(context.Background())
	require.NoError(t, err)

	assert.Empty(t, resp.PopularItems)
	assert.Equal(t, 2, resp.TotalOrdersProcessed)
	assert.Zero(t, resp.TotalItemsCounted)
	assert.Equal(t, 2, resp.SkippedItems)
}

func TestTallyItemsRankingAndPercentages(t *testing.T) {
	resp := TallyItems([]string{
		`[{"name":"Tea"},{"name":"Tea"},{"name":"Coffee"}]`,
		`[{"name":"Tea"},{"name":"Soup"},{"name":"Coffee"}]`,
		`[{"name":"Cake"},{"name":"Juice"},{"name":"Water"}]`,
	})

	require.Len(t, resp.PopularItems, 5)
	assert.Equal(t, "Tea", resp.PopularItems[0].Name)
	assert.Equal(t, 3, resp.PopularItems[0].Count)
	assert.Equal(t, 33.33, resp.PopularItems[0].Percentage)
	assert.Equal(t, "Coffee", resp.PopularItems[1].Name)

	// Ties on count resolve alphabetically.
	assert.Equal(t, "Cake", resp.PopularItems[2].Name)
	assert.Equal(t, "Juice", resp.PopularItems[3].Name)
	assert.Equal(t, "Soup", resp.PopularItems[4].Name)

	assert.Equal(t, 9, resp.TotalItemsCounted)
	assert.Zero(t, resp.SkippedItems)
}

func TestTallyItemsCaseSensitive(t *testing.T) {
	resp := TallyItems([]string{`[{"name":"tea"},{"name":"Tea"}]`})

	require.Len(t, resp.PopularItems, 2)
	assert.Equal(t, 2, resp.TotalItemsCounted)
}
