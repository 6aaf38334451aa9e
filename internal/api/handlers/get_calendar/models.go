package get_calendar

import (
	"errors"
	"strconv"

	"github.com/m04kA/excursion-booking/internal/domain"
	getCalendar "github.com/m04kA/excursion-booking/internal/usecase/get_calendar"
)

var errInvalidQuery = errors.New("year and month must be integers")

// MonthLink ссылка на соседний месяц
type MonthLink struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// DayResponse ячейка календаря
type DayResponse struct {
	Day            int    `json:"day"`
	Date           string `json:"date"` // "2026-06-03"
	Status         string `json:"status"`
	AvailableSlots int    `json:"availableSlots"`
	Bookable       bool   `json:"bookable"`
	IsToday        bool   `json:"isToday"`
	Weekday        string `json:"weekday"`
}

// CalendarResponse HTTP response model
// Недели всегда по 7 ячеек, null - пустая ячейка вне месяца
type CalendarResponse struct {
	Year      int              `json:"year"`
	Month     int              `json:"month"`
	MonthName string           `json:"monthName"`
	Today     string           `json:"today"`
	Capacity  int              `json:"capacity"`
	Prev      *MonthLink       `json:"prev"` // null на границе допустимых лет
	Next      *MonthLink       `json:"next"`
	Weekdays  []string         `json:"weekdays"`
	Weeks     [][]*DayResponse `json:"weeks"`
}

// ToUseCaseRequest разбирает query параметры year и month, пустые означают текущий месяц
func ToUseCaseRequest(yearStr, monthStr string) (*getCalendar.Request, error) {
	req := &getCalendar.Request{}

	if yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return nil, errInvalidQuery
		}
		req.Year = year
	}

	if monthStr != "" {
		month, err := strconv.Atoi(monthStr)
		if err != nil {
			return nil, errInvalidQuery
		}
		req.Month = month
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCalendar.Response) *CalendarResponse {
	cal := resp.Calendar

	result := &CalendarResponse{
		Year:      cal.Year,
		Month:     int(cal.Month),
		MonthName: cal.MonthName,
		Today:     domain.DateKey(resp.Today),
		Capacity:  resp.Capacity,
		Prev:      toMonthLink(cal.Prev),
		Next:      toMonthLink(cal.Next),
		Weekdays:  cal.Weekdays[:],
		Weeks:     make([][]*DayResponse, 0, len(cal.Weeks)),
	}

	for _, week := range cal.Weeks {
		row := make([]*DayResponse, 0, len(week))
		for _, cell := range week {
			if cell == nil {
				row = append(row, nil)
				continue
			}
			row = append(row, &DayResponse{
				Day:            cell.Day,
				Date:           domain.DateKey(cell.Date),
				Status:         string(cell.Status),
				AvailableSlots: cell.AvailableSlots,
				Bookable:       cell.Status.IsBookable(),
				IsToday:        cell.IsToday,
				Weekday:        cell.WeekdayName,
			})
		}
		result.Weeks = append(result.Weeks, row)
	}

	return result
}

func toMonthLink(ref *domain.MonthRef) *MonthLink {
	if ref == nil {
		return nil
	}
	return &MonthLink{Year: ref.Year, Month: int(ref.Month)}
}
