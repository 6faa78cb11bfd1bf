package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"order-tracker/internal/mylogger"
	"order-tracker/internal/orders/app/core"
	"order-tracker/internal/orders/domain/dto"
)

const (
	dailyVolumeDays = 30
	busyHoursTop    = 5
	popularItemsTop = 5
)

var weekdayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// AnalyticsService turns raw aggregation rows into the manager-facing
// reports. It never mutates state; all ranking, zero-filling and rounding
// happen here so the rules are testable without a database.
type AnalyticsService struct {
	ctx           context.Context
	analyticsRepo core.IAnalyticsRepo
	mylog         mylogger.Logger
}

func NewAnalyticsService(
	ctx context.Context,
	analyticsRepo core.IAnalyticsRepo,
	mylog mylogger.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		ctx:           ctx,
		analyticsRepo: analyticsRepo,
		mylog:         mylog,
	}
}

// HourlyTrends reports all 24 hours, zero-filled, with the average
// preparation time of DONE orders per hour rounded to one decimal.
func (as *AnalyticsService) HourlyTrends(ctx context.Context) ([]dto.HourlyTrend, error) {
	buckets, err := as.analyticsRepo.HourBuckets(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot compute hourly trends: %w", err)
	}

	byHour := make(map[string]dto.HourlyTrend, len(buckets))
	for _, b := range buckets {
		byHour[b.Hour] = dto.HourlyTrend{
			Hour:               b.Hour,
			OrderCount:         b.Count,
			AvgPreparationTime: core.Round1(b.AvgPrep),
		}
	}

	trends := make([]dto.HourlyTrend, 0, 24)
	for h := 0; h < 24; h++ {
		hour := fmt.Sprintf("%02d", h)
		if trend, ok := byHour[hour]; ok {
			trends = append(trends, trend)
		} else {
			trends = append(trends, dto.HourlyTrend{Hour: hour})
		}
	}
	return trends, nil
}

// DailyVolume reports the most recent 30 distinct dates present in the data,
// newest first.
func (as *AnalyticsService) DailyVolume(ctx context.Context) ([]dto.DailyVolume, error) {
	buckets, err := as.analyticsRepo.DateBuckets(ctx, dailyVolumeDays)
	if err != nil {
		return nil, fmt.Errorf("cannot compute daily volume: %w", err)
	}

	volume := make([]dto.DailyVolume, 0, len(buckets))
	for _, b := range buckets {
		volume = append(volume, dto.DailyVolume{
			Date:              b.Date,
			OrderCount:        b.Count,
			AvgCompletionTime: core.Round1(b.AvgPrep),
		})
	}
	return volume, nil
}

// BusyHours ranks the top 5 hours by order count. Ties break on ascending
// hour value. Buckets whose key is not a valid 00-23 hour (creation times
// stored verbatim from clients) are left out.
func (as *AnalyticsService) BusyHours(ctx context.Context) ([]dto.BusyHour, error) {
	buckets, err := as.analyticsRepo.HourBuckets(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot compute busy hours: %w", err)
	}

	busy := make([]dto.BusyHour, 0, len(buckets))
	for _, b := range buckets {
		if !validHour(b.Hour) {
			continue
		}
		busy = append(busy, dto.BusyHour{Hour: b.Hour, OrderCount: b.Count})
	}

	sort.Slice(busy, func(i, j int) bool {
		if busy[i].OrderCount != busy[j].OrderCount {
			return busy[i].OrderCount > busy[j].OrderCount
		}
		return busy[i].Hour < busy[j].Hour
	})

	if len(busy) > busyHoursTop {
		busy = busy[:busyHoursTop]
	}
	return busy, nil
}

// BusyDays ranks all 7 weekdays by total order count, descending; ties break
// on ascending weekday index (Sunday first). Rows with no usable day_of_week
// are grouped under "Unknown", appended only when present.
func (as *AnalyticsService) BusyDays(ctx context.Context) ([]dto.BusyDay, error) {
	buckets, err := as.analyticsRepo.WeekdayBuckets(ctx)
	if err != nil {
		return nil, fmt.Errorf("cannot compute busy days: %w", err)
	}

	var counts [7]int
	unknown := 0
	for _, b := range buckets {
		if b.Day == nil || *b.Day < 0 || *b.Day > 6 {
			unknown += b.Count
			continue
		}
		counts[*b.Day] += b.Count
	}

	type ranked struct {
		day   int
		name  string
		count int
	}
	days := make([]ranked, 0, 8)
	for day, name := range weekdayNames {
		days = append(days, ranked{day: day, name: name, count: counts[day]})
	}
	if unknown > 0 {
		days = append(days, ranked{day: len(weekdayNames), name: "Unknown", count: unknown})
	}

	sort.Slice(days, func(i, j int) bool {
		if days[i].count != days[j].count {
			return days[i].count > days[j].count
		}
		return days[i].day < days[j].day
	})

	busy := make([]dto.BusyDay, 0, len(days))
	for _, d := range days {
		busy = append(busy, dto.BusyDay{Day: d.name, OrderCount: d.count})
	}
	return busy, nil
}

// PopularItems tallies item names across completed orders and returns the
// top 5 with their share of all tallied occurrences. Malformed blobs and
// unusable elements are skipped and surfaced in the diagnostics.
func (as *AnalyticsService) PopularItems(ctx context.Context) (dto.PopularItemsResponse, error) {
	blobs, err := as.analyticsRepo.CompletedItemBlobs(ctx)
	if err != nil {
		return dto.PopularItemsResponse{}, fmt.Errorf("cannot compute popular items: %w", err)
	}

	resp := TallyItems(blobs)
	if resp.SkippedItems > 0 {
		as.mylog.Action("popular_items").Warn("Skipped malformed item entries",
			"skipped", resp.SkippedItems, "orders", resp.TotalOrdersProcessed)
	}
	return resp, nil
}

// TallyItems is the pure tallying core of the popular-items report.
// Skip rules: a blob that is not a JSON array counts as one skip; each
// element that is not an object, or lacks a non-empty string name, counts as
// one skip. With zero tallied items the ranking is empty and no percentage
// is computed.
func TallyItems(blobs []string) dto.PopularItemsResponse {
	counts := map[string]int{}
	tallied := 0
	skipped := 0

	for _, blob := range blobs {
		var elems []json.RawMessage
		if err := json.Unmarshal([]byte(blob), &elems); err != nil {
			skipped++
			continue
		}
		for _, elem := range elems {
			var record map[string]any
			if err := json.Unmarshal(elem, &record); err != nil {
				skipped++
				continue
			}
			name, ok := record["name"].(string)
			if !ok || name == "" {
				skipped++
				continue
			}
			counts[name]++
			tallied++
		}
	}

	resp := dto.PopularItemsResponse{
		PopularItems:         []dto.PopularItem{},
		TotalOrdersProcessed: len(blobs),
		TotalItemsCounted:    tallied,
		SkippedItems:         skipped,
	}
	if tallied == 0 {
		return resp
	}

	items := make([]dto.PopularItem, 0, len(counts))
	for name, count := range counts {
		items = append(items, dto.PopularItem{
			Name:       name,
			Count:      count,
			Percentage: core.Round2(float64(count) * 100 / float64(tallied)),
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		return items[i].Name < items[j].Name
	})

	if len(items) > popularItemsTop {
		items = items[:popularItemsTop]
	}
	resp.PopularItems = items
	return resp
}

func validHour(hour string) bool {
	if len(hour) != 2 {
		return false
	}
	if hour[0] < '0' || hour[0] > '9' || hour[1] < '0' || hour[1] > '9' {
		return false
	}
	return hour <= "23"
}
