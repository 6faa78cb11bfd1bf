package handle

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"order-tracker/internal/mylogger"
	"order-tracker/internal/orders/app/services"
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

func newAnalyticsMux(repo *fakeAnalyticsRepo) *http.ServeMux {
	ctx := context.Background()
	mylog := mylogger.New("test", "ERROR")
	analyticsService := services.NewAnalyticsService(ctx, repo, mylog)
	analyticsHandler := NewAnalyticsHandler(analyticsService, mylog)

	mux := http.NewServeMux()
	mux.Handle("GET /analytics/hourly-trends", analyticsHandler.HourlyTrends())
	mux.Handle("GET /analytics/daily-volume", analyticsHandler.DailyVolume())
	mux.Handle("GET /analytics/busy-hours", analyticsHandler.BusyHours())
	mux.Handle("GET /analytics/busy-days", analyticsHandler.BusyDays())
	mux.Handle("GET /analytics/popular-items", analyticsHandler.PopularItems())
	return mux
}

func get(mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHourlyTrendsAlways24Entries(t *testing.T) {
	mux := newAnalyticsMux(&fakeAnalyticsRepo{})

	rec := get(mux, "/analytics/hourly-trends")
	require.Equal(t, http.StatusOK, rec.Code)

	var trends []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trends))
	require.Len(t, trends, 24)
	assert.Equal(t, "00", trends[0]["hour"])
	assert.EqualValues(t, 0, trends[0]["order_count"])
}

func TestBusyDaysEndpoint(t *testing.T) {
	two := 2
	mux := newAnalyticsMux(&fakeAnalyticsRepo{
		weekdays: []models.WeekdayBucket{{Day: &two, Count: 4}},
	})

	rec := get(mux, "/analytics/busy-days")
	require.Equal(t, http.StatusOK, rec.Code)

	var days []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &days))
	require.Len(t, days, 7)
	assert.Equal(t, "Tuesday", days[0]["day"])
}

func TestPopularItemsEndpoint(t *testing.T) {
	mux := newAnalyticsMux(&fakeAnalyticsRepo{
		blobs: []string{`[{"name":"Tea"},{"name":"Tea"},{"name":"Coffee"}]`},
	})

	rec := get(mux, "/analytics/popular-items")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		PopularItems []struct {
			Name       string  `json:"name"`
			Count      int     `json:"count"`
			Percentage float64 `json:"percentage"`
		} `json:"popular_items"`
		TotalOrdersProcessed int `json:"total_orders_processed"`
		TotalItemsCounted    int `json:"total_items_counted"`
		SkippedItems         int `json:"skipped_items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.PopularItems, 2)
	assert.Equal(t, "Tea", resp.PopularItems[0].Name)
	assert.Equal(t, 66.67, resp.PopularItems[0].Percentage)
	assert.Equal(t, 1, resp.TotalOrdersProcessed)
	assert.Equal(t, 3, resp.TotalItemsCounted)
	assert.Zero(t, resp.SkippedItems)
}

func TestDailyVolumeEndpoint(t *testing.T) {
	mux := newAnalyticsMux(&fakeAnalyticsRepo{
		dates: []models.DateBucket{{Date: "2024-06-04", Count: 3, AvgPrep: 5.64}},
	})

	rec := get(mux, "/analytics/daily-volume")
	require.Equal(t, http.StatusOK, rec.Code)

	var volume []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &volume))
	require.Len(t, volume, 1)
	assert.Equal(t, "2024-06-04", volume[0]["date"])
	assert.EqualValues(t, 5.6, volume[0]["avg_completion_time"])
}
