package simulation

import (
	"fmt"
	"time"
)

// ISO week identifiers look like "2025-W01" and follow the ISO-8601
// week-numbering calendar. All date math here is UTC.

func startOfISOWeek(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

// FormatWeek renders the ISO week identifier of t.
func FormatWeek(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// ParseWeek returns the Monday of the given ISO week.
func ParseWeek(week string) (time.Time, error) {
	var year, wk int
	if _, err := fmt.Sscanf(week, "%d-W%d", &year, &wk); err != nil {
		return time.Time{}, fmt.Errorf("invalid ISO week %q: %w", week, err)
	}
	if wk < 1 || wk > 53 {
		return time.Time{}, fmt.Errorf("invalid ISO week %q: week number out of range", week)
	}
	// Jan 4 always falls in week 1 of its ISO year.
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	return startOfISOWeek(jan4).AddDate(0, 0, 7*(wk-1)), nil
}

// AddWeeksISO shifts an ISO week identifier by n weeks.
func AddWeeksISO(week string, n int) (string, error) {
	start, err := ParseWeek(week)
	if err != nil {
		return "", err
	}
	return FormatWeek(start.AddDate(0, 0, 7*n)), nil
}

// WeekRange lists horizon consecutive ISO weeks starting at the week
// containing now.
func WeekRange(now time.Time, horizon int) []string {
	start := startOfISOWeek(now)
	weeks := make([]string, 0, horizon)
	for i := 0; i < horizon; i++ {
		weeks = append(weeks, FormatWeek(start.AddDate(0, 0, 7*i)))
	}
	return weeks
}

// WeekStartDate renders the Monday of an ISO week as YYYY-MM-DD.
func WeekStartDate(week string) string {
	start, err := ParseWeek(week)
	if err != nil {
		return ""
	}
	return start.Format("2006-01-02")
}

// WeekEndDate renders the Sunday of an ISO week as YYYY-MM-DD.
func WeekEndDate(week string) string {
	start, err := ParseWeek(week)
	if err != nil {
		return ""
	}
	return start.AddDate(0, 0, 6).Format("2006-01-02")
}

// PeriodKey renders the monthly ("2025-08") or quarterly ("2025-Q3") capital
// bucket containing now.
func PeriodKey(now time.Time, period CapitalPeriod) string {
	now = now.UTC()
	if period == PeriodQuarterly {
		quarter := (int(now.Month())-1)/3 + 1
		return fmt.Sprintf("%04d-Q%d", now.Year(), quarter)
	}
	return fmt.Sprintf("%04d-%02d", now.Year(), int(now.Month()))
}
