package get_calendar

import (
	"time"

	"github.com/m04kA/excursion-booking/internal/domain"
)

// Request модель запроса календаря. Нулевые Year и Month - текущий месяц
type Request struct {
	Year  int
	Month int
}

// Response модель ответа
type Response struct {
	Calendar *domain.Calendar
	Today    time.Time // Сегодняшняя дата в часовом поясе сервиса
	Capacity int       // Мест на одну дату
}
