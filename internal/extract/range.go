package extract

import (
	"fmt"
	"time"
)

// DateOnly is the calendar-date format accepted for window bounds.
const DateOnly = "2006-01-02"

// defaultEarliest is the platform launch date, used when no lower bound
// is supplied.
var defaultEarliest = time.Date(2016, 9, 20, 0, 0, 0, 0, time.Local)

// ParseDateRange parses the inclusive [earliest, latest] window bounds.
// An empty earliest defaults to the platform launch date; an empty
// latest defaults to today.
func ParseDateRange(earliest, latest string) (time.Time, time.Time, error) {
	lo := defaultEarliest
	if earliest != "" {
		t, err := time.ParseInLocation(DateOnly, earliest, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid earliest date %q: %w", earliest, err)
		}
		lo = t
	}

	hi := time.Now()
	if latest != "" {
		t, err := time.ParseInLocation(DateOnly, latest, time.Local)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid latest date %q: %w", latest, err)
		}
		hi = t
	}

	return lo, hi, nil
}
