package clock

import (
	"fmt"
	"time"
)

// All order timestamps are rendered in one regional zone with these layouts.
// The store keeps them as text, so the layouts are part of the data contract.
const (
	TimeLayout   = "2006-01-02 15:04:05"
	DateLayout   = "2006-01-02"
	IDDateLayout = "020106"
)

// Clock supplies local wall-clock time in a fixed regional timezone.
type Clock struct {
	loc *time.Location
}

func New(timezone string) (*Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	return &Clock{loc: loc}, nil
}

// NewFixed builds a clock over an already-resolved location. Used in tests.
func NewFixed(loc *time.Location) *Clock {
	return &Clock{loc: loc}
}

func (c *Clock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Stamp renders the current local time in the canonical timestamp layout.
func (c *Clock) Stamp() string {
	return c.Now().Format(TimeLayout)
}

// Today renders the current local date in the canonical date layout.
func (c *Clock) Today() string {
	return c.Now().Format(DateLayout)
}

func (c *Clock) Location() *time.Location {
	return c.loc
}
