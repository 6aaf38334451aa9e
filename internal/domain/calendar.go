package domain

import "time"

// DayStatus is the derived booking status of a calendar day
type DayStatus string

const (
	DayPast          DayStatus = "past"
	DayWeekend       DayStatus = "weekend"
	DayClosedWeekday DayStatus = "closed-weekday"
	DayBlocked       DayStatus = "blocked"
	DayBooked        DayStatus = "booked"
	DayLimited       DayStatus = "limited"
	DayAvailable     DayStatus = "available"
)

// IsBookable returns true if a visitor may still pick the day
func (s DayStatus) IsBookable() bool {
	return s == DayLimited || s == DayAvailable
}

// CalendarDay is one non-placeholder cell of the month grid
type CalendarDay struct {
	Day            int
	Date           time.Time
	Status         DayStatus
	AvailableSlots int
	IsToday        bool
	WeekdayName    string
}

// MonthRef identifies a month for navigation
type MonthRef struct {
	Year  int
	Month time.Month
}

// Prev returns the previous month, rolling the year over in January
func (m MonthRef) Prev() MonthRef {
	if m.Month == time.January {
		return MonthRef{Year: m.Year - 1, Month: time.December}
	}
	return MonthRef{Year: m.Year, Month: m.Month - 1}
}

// Next returns the next month, rolling the year over in December
func (m MonthRef) Next() MonthRef {
	if m.Month == time.December {
		return MonthRef{Year: m.Year + 1, Month: time.January}
	}
	return MonthRef{Year: m.Year, Month: m.Month + 1}
}

// FirstDay returns the first date of the month
func (m MonthRef) FirstDay() time.Time {
	return NewDate(m.Year, m.Month, 1)
}

// LastDay returns the last date of the month
func (m MonthRef) LastDay() time.Time {
	return NewDate(m.Year, m.Month, DaysIn(m.Year, m.Month))
}

// Calendar is a rendered month: navigation, weekday header and week rows.
// Every row has exactly 7 cells, nil cells are placeholders.
// Prev and Next are nil when the neighbour falls outside the supported years.
type Calendar struct {
	Year      int
	Month     time.Month
	MonthName string
	Prev      *MonthRef
	Next      *MonthRef
	Weekdays  [7]string
	Weeks     [][7]*CalendarDay
}

// Days returns non-placeholder cells in order
func (c *Calendar) Days() []*CalendarDay {
	days := make([]*CalendarDay, 0, 31)
	for _, week := range c.Weeks {
		for _, cell := range week {
			if cell != nil {
				days = append(days, cell)
			}
		}
	}
	return days
}
