package domain

import "time"

// DateOnly truncates t to its calendar date at UTC midnight.
// The calendar date is taken in t's own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a UTC-midnight date
func ParseDate(raw string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, raw, time.UTC)
}

// DateRange is a half-open range of calendar dates [Start, End)
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open ranges share at least one day
func (r DateRange) Overlaps(other DateRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Contains reports whether d falls inside [Start, End)
func (r DateRange) Contains(d time.Time) bool {
	return !d.Before(r.Start) && d.Before(r.End)
}

// Days returns every date of the range in order
func (r DateRange) Days() []time.Time {
	var days []time.Time
	for d := r.Start; d.Before(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
