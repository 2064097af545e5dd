package finance_test

import (
	"testing"
	"time"

	"oficina-backend/finance"
)

func TestMonthRange(t *testing.T) {
	start, end, err := finance.MonthRange("2024-12")
	if err != nil {
		t.Fatalf("MonthRange: %v", err)
	}

	wantStart := time.Date(2024, 12, 1, 0, 0, 0, 0, time.Local)
	wantEnd := time.Date(2025, 1, 1, 0, 0, 0, 0, time.Local)
	if !start.Equal(wantStart) {
		t.Errorf("start = %v, want %v", start, wantStart)
	}
	if !end.Equal(wantEnd) {
		t.Errorf("end = %v, want %v", end, wantEnd)
	}

	// Half-open boundaries: the last instant of November is out, midnight on
	// December 1st is in.
	lastOfNovember := time.Date(2024, 11, 30, 23, 59, 59, 0, time.Local)
	if !lastOfNovember.Before(start) {
		t.Errorf("%v should fall before the December window", lastOfNovember)
	}
	firstOfDecember := time.Date(2024, 12, 1, 0, 0, 0, 0, time.Local)
	if firstOfDecember.Before(start) || !firstOfDecember.Before(end) {
		t.Errorf("%v should fall inside the December window", firstOfDecember)
	}
}

func TestMonthRange_NovemberContainsItsLastSecond(t *testing.T) {
	start, end, err := finance.MonthRange("2024-11")
	if err != nil {
		t.Fatalf("MonthRange: %v", err)
	}
	lastOfNovember := time.Date(2024, 11, 30, 23, 59, 59, 0, time.Local)
	if lastOfNovember.Before(start) || !lastOfNovember.Before(end) {
		t.Errorf("%v should fall inside the November window", lastOfNovember)
	}
}

func TestMonthRange_YearRollover(t *testing.T) {
	_, end, err := finance.MonthRange("2023-12")
	if err != nil {
		t.Fatalf("MonthRange: %v", err)
	}
	if end.Year() != 2024 || end.Month() != time.January {
		t.Errorf("end = %v, want start of January 2024", end)
	}
}

func TestMonthRange_Invalid(t *testing.T) {
	for _, month := range []string{"", "2024", "2024-1", "2024-13", "12-2024", "2024/12", "abc"} {
		if _, _, err := finance.MonthRange(month); err == nil {
			t.Errorf("MonthRange(%q): expected error", month)
		}
	}
}

func TestCurrentMonth(t *testing.T) {
	if got, want := finance.CurrentMonth(), time.Now().Format("2006-01"); got != want {
		t.Errorf("CurrentMonth() = %q, want %q", got, want)
	}
}
