package finance

import (
	"fmt"
	"time"
)

// MonthRange resolves a "YYYY-MM" selector to the half-open interval
// [startOfMonth, startOfNextMonth) in local calendar terms.
func MonthRange(month string) (time.Time, time.Time, error) {
	if len(month) != 7 {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q, want YYYY-MM", month)
	}
	t, err := time.ParseInLocation("2006-01", month, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month %q, want YYYY-MM", month)
	}
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 1, 0), nil
}

// CurrentMonth returns the selector for the month containing now.
func CurrentMonth() string {
	return time.Now().Format("2006-01")
}
