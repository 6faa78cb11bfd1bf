package core

import (
	"fmt"
	"math"
	"time"

	"order-tracker/internal/xpkg/clock"
)

// CustomOrderID renders the human-facing daily order identifier DDMMYY-NNN.
// seq is 1-based and restarts every local calendar day.
func CustomOrderID(date time.Time, seq int) string {
	return fmt.Sprintf("%s-%03d", date.Format(clock.IDDateLayout), seq)
}

// MinutesBetween computes the whole-minute duration between the stored
// creation timestamp and the completion time. A creation timestamp that does
// not match the canonical layout (clients may submit their own) yields 0
// instead of an error; negative spans clamp to 0.
func MinutesBetween(createdRaw string, completed time.Time) int {
	created, err := time.ParseInLocation(clock.TimeLayout, createdRaw, completed.Location())
	if err != nil {
		return 0
	}
	minutes := int(math.Floor(completed.Sub(created).Seconds() / 60))
	if minutes < 0 {
		return 0
	}
	return minutes
}

// DayOfWeek derives the 0=Sunday weekday index from the stored creation
// timestamp. Returns nil when the timestamp does not parse, so such rows land
// in the "Unknown" bucket of the busy-days report instead of a wrong weekday.
func DayOfWeek(createdRaw string, loc *time.Location) *int {
	created, err := time.ParseInLocation(clock.TimeLayout, createdRaw, loc)
	if err != nil {
		return nil
	}
	day := int(created.Weekday())
	return &day
}

// Round1 and Round2 implement the report rounding rules: averages to one
// decimal place, percentages to two.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
