package shared

import "time"

// DateOnly truncates t to a UTC calendar date.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the ISO week start (Monday) for the given date.
func WeekStart(t time.Time) time.Time {
	d := DateOnly(t)
	// Weekday is Sunday=0; shift so Monday=0.
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// MonthStart returns the first day of t's month.
func MonthStart(t time.Time) time.Time {
	d := DateOnly(t)
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// WindowStart returns the earliest date covered by a lookback window of
// the given length ending today. days=7 reaches back to 7 days before today.
func WindowStart(now time.Time, days int) time.Time {
	return DateOnly(now).AddDate(0, 0, -days)
}
