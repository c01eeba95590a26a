package stats

import "time"

// weekStart returns midnight on the Monday of now's calendar week. Go calls
// Sunday day 0; it is treated as day 7 so the Monday offset comes out right.
func weekStart(now time.Time) time.Time {
	wd := int(now.Weekday())
	if wd == 0 {
		wd = 7
	}
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return day.AddDate(0, 0, -(wd - 1))
}

// monthStart returns midnight on the first day of now's month.
func monthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// inWindow reports whether t falls on or after the window start. The
// boundary instant itself is inside the window.
func inWindow(t, start time.Time) bool {
	return !t.Before(start)
}
