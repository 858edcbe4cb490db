package leave

import (
	"time"
)

// CalendarDay strips the time-of-day and offset from a timestamp, keeping the
// calendar date it names: 2024-06-10T23:00:00+02:00 becomes 2024-06-10 UTC.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CalculateDays returns the inclusive calendar-day count between start and
// end, so a single-day request counts as 1. Only the dates matter: a range
// crossing midnight spans two days no matter how few hours it covers.
func CalculateDays(start, end time.Time) (float64, error) {
	start, end = CalendarDay(start), CalendarDay(end)
	if end.Before(start) {
		return 0, ErrInvalidRange
	}
	return end.Sub(start).Hours()/24 + 1, nil
}

// Overlaps reports whether two inclusive date ranges intersect:
// start1 <= end2 AND start2 <= end1.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !bStart.After(aEnd)
}
