package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Schedule is the weekly excursion policy: which weekdays are closed and
// how many active bookings a single date accepts.
type Schedule struct {
	Capacity       int
	ClosedWeekdays map[time.Weekday]struct{}
}

// NewSchedule builds a Schedule from a capacity and a list of closed weekdays
func NewSchedule(capacity int, closed ...time.Weekday) Schedule {
	set := make(map[time.Weekday]struct{}, len(closed))
	for _, wd := range closed {
		set[wd] = struct{}{}
	}
	return Schedule{Capacity: capacity, ClosedWeekdays: set}
}

// IsClosed reports whether excursions run on the given weekday
func (s Schedule) IsClosed(wd time.Weekday) bool {
	_, closed := s.ClosedWeekdays[wd]
	return closed
}

// Closed returns closed weekdays ordered Monday first
func (s Schedule) Closed() []time.Weekday {
	out := make([]time.Weekday, 0, len(s.ClosedWeekdays))
	for wd := range s.ClosedWeekdays {
		out = append(out, wd)
	}
	sort.Slice(out, func(i, j int) bool {
		return MondayIndex(out[i]) < MondayIndex(out[j])
	})
	return out
}

// Remaining returns free places left on a date with the given active count
func (s Schedule) Remaining(activeCount int) int {
	remaining := s.Capacity - activeCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// IsWeekend returns true for Saturday and Sunday
func IsWeekend(wd time.Weekday) bool {
	return wd == time.Saturday || wd == time.Sunday
}

// MondayIndex converts time.Weekday (Sunday = 0) to a Monday-first index 0..6
func MondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"mon":       time.Monday,
	"tuesday":   time.Tuesday,
	"tue":       time.Tuesday,
	"wednesday": time.Wednesday,
	"wed":       time.Wednesday,
	"thursday":  time.Thursday,
	"thu":       time.Thursday,
	"friday":    time.Friday,
	"fri":       time.Friday,
	"saturday":  time.Saturday,
	"sat":       time.Saturday,
	"sunday":    time.Sunday,
	"sun":       time.Sunday,
}

// ParseWeekday parses an English weekday name ("monday", "Mon")
func ParseWeekday(name string) (time.Weekday, error) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return time.Sunday, fmt.Errorf("unknown weekday %q", name)
	}
	return wd, nil
}
