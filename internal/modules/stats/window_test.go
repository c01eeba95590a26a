package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d, hh int) time.Time {
	return time.Date(y, m, d, hh, 0, 0, 0, time.UTC)
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{"monday maps to itself", date(2026, time.August, 24, 15), date(2026, time.August, 24, 0)},
		{"wednesday", date(2026, time.August, 26, 9), date(2026, time.August, 24, 0)},
		{"saturday", date(2026, time.August, 29, 23), date(2026, time.August, 24, 0)},
		{"sunday belongs to the preceding monday", date(2026, time.August, 30, 1), date(2026, time.August, 24, 0)},
		{"week spanning a month boundary", date(2026, time.September, 1, 12), date(2026, time.August, 31, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, weekStart(tt.now))
		})
	}
}

func TestMonthStart(t *testing.T) {
	require.Equal(t, date(2026, time.August, 1, 0), monthStart(date(2026, time.August, 29, 18)))
	require.Equal(t, date(2026, time.February, 1, 0), monthStart(date(2026, time.February, 28, 23)))
}

func TestInWindowBoundaryIsInside(t *testing.T) {
	start := date(2026, time.August, 24, 0)
	require.True(t, inWindow(start, start))
	require.True(t, inWindow(start.Add(time.Second), start))
	require.False(t, inWindow(start.Add(-time.Second), start))
}
