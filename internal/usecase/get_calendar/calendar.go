package get_calendar

import (
	"time"

	"github.com/m04kA/excursion-booking/internal/domain"
)

// BuildCalendar строит сетку месяца и статус каждого дня.
// Чистая функция: today - сегодняшняя дата, counts - неотменённые
// бронирования по датам, blocked - заблокированные даты (ключи YYYY-MM-DD)
func BuildCalendar(
	year int,
	month time.Month,
	today time.Time,
	counts map[string]int,
	blocked map[string]struct{},
	schedule domain.Schedule,
) (*domain.Calendar, error) {
	if err := validateMonth(year, int(month)); err != nil {
		return nil, err
	}

	ref := domain.MonthRef{Year: year, Month: month}
	today = domain.DateOf(today)
	daysInMonth := domain.DaysIn(year, month)

	calendar := &domain.Calendar{
		Year:      year,
		Month:     month,
		MonthName: domain.MonthNames[month-1],
		Prev:      navigationLink(ref.Prev()),
		Next:      navigationLink(ref.Next()),
		Weekdays:  domain.WeekdaysShort,
		Weeks:     make([][7]*domain.CalendarDay, 0, 6),
	}

	// Пустые ячейки перед первым днём, чтобы неделя начиналась с понедельника
	column := domain.MondayIndex(ref.FirstDay().Weekday())
	var week [7]*domain.CalendarDay

	for day := 1; day <= daysInMonth; day++ {
		date := domain.NewDate(year, month, day)
		week[column] = buildDay(date, today, counts, blocked, schedule)

		column++
		if column == 7 {
			calendar.Weeks = append(calendar.Weeks, week)
			week = [7]*domain.CalendarDay{}
			column = 0
		}
	}

	// Хвост последней недели остаётся nil
	if column > 0 {
		calendar.Weeks = append(calendar.Weeks, week)
	}

	return calendar, nil
}

func buildDay(
	date, today time.Time,
	counts map[string]int,
	blocked map[string]struct{},
	schedule domain.Schedule,
) *domain.CalendarDay {
	status, slots := dayStatus(date, today, counts, blocked, schedule)

	return &domain.CalendarDay{
		Day:            date.Day(),
		Date:           date,
		Status:         status,
		AvailableSlots: slots,
		IsToday:        date.Equal(today),
		WeekdayName:    domain.WeekdaysFull[domain.MondayIndex(date.Weekday())],
	}
}

// dayStatus порядок проверок фиксирован: прошлое, закрытый день недели,
// блокировка, заполненность
func dayStatus(
	date, today time.Time,
	counts map[string]int,
	blocked map[string]struct{},
	schedule domain.Schedule,
) (domain.DayStatus, int) {
	if date.Before(today) {
		return domain.DayPast, 0
	}

	weekday := date.Weekday()
	if schedule.IsClosed(weekday) {
		if domain.IsWeekend(weekday) {
			return domain.DayWeekend, 0
		}
		return domain.DayClosedWeekday, 0
	}

	key := domain.DateKey(date)
	if _, ok := blocked[key]; ok {
		return domain.DayBlocked, 0
	}

	remaining := schedule.Remaining(counts[key])
	switch {
	case remaining == 0:
		return domain.DayBooked, 0
	case remaining == 1:
		return domain.DayLimited, 1
	default:
		return domain.DayAvailable, remaining
	}
}

// navigationLink ссылка на соседний месяц, nil за границами допустимых лет
func navigationLink(ref domain.MonthRef) *domain.MonthRef {
	if ref.Year < minYear || ref.Year > maxYear {
		return nil
	}
	return &ref
}
