package models

// Aggregation rows as they come back from the store. Zero-filling, ranking
// and rounding happen in the analytics service, not in SQL.

// HourBucket groups orders by the two-digit hour extracted from the creation
// timestamp. AvgPrep averages time_taken_minutes over DONE orders only.
type HourBucket struct {
	Hour    string
	Count   int
	AvgPrep float64
}

type DateBucket struct {
	Date    string
	Count   int
	AvgPrep float64
}

// WeekdayBucket groups by the precomputed day_of_week column; Day is nil for
// rows whose creation time never parsed.
type WeekdayBucket struct {
	Day   *int
	Count int
}

type CompletedStats struct {
	Count      int
	AvgMinutes float64
}
