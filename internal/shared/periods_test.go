package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"monday maps to itself", time.Date(2024, 6, 10, 15, 30, 0, 0, time.UTC), time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)},
		{"wednesday", time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)},
		{"sunday belongs to preceding monday", time.Date(2024, 6, 16, 23, 59, 0, 0, time.UTC), time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)},
		{"across month boundary", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 5, 27, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, WeekStart(tc.in))
		})
	}
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2024, 6, 12, 23, 45, 12, 999, time.FixedZone("NZST", 12*3600))
	got := DateOnly(in)
	assert.Equal(t, time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC), got)
}

func TestMonthStart(t *testing.T) {
	assert.Equal(t,
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		MonthStart(time.Date(2024, 6, 30, 10, 0, 0, 0, time.UTC)))
}

func TestWindowStart(t *testing.T) {
	now := time.Date(2024, 6, 12, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC), WindowStart(now, 7))
	assert.Equal(t, time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC), WindowStart(now, 30))
}
