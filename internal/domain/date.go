package domain

import "time"

// DateOf returns midnight UTC of the calendar date of t in t's location.
// All excursion dates are kept in this form so they compare and key consistently.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewDate builds a calendar date (midnight UTC)
func NewDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses YYYY-MM-DD into a calendar date
func ParseDate(raw string) (time.Time, error) {
	t, err := time.Parse(DateFormat, raw)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}

// DateKey returns the YYYY-MM-DD key of a date
func DateKey(t time.Time) string {
	return t.Format(DateFormat)
}

// DaysIn returns the number of days in the month
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
