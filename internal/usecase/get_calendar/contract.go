package get_calendar

import (
	"context"
	"time"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// CountActiveByDateRange количество неотменённых бронирований по датам, ключ - YYYY-MM-DD
	CountActiveByDateRange(ctx context.Context, from, to time.Time) (map[string]int, error)
}

// BlockedDateRepository интерфейс репозитория заблокированных дат
type BlockedDateRepository interface {
	ListDates(ctx context.Context, from, to time.Time) (map[string]struct{}, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	// DoReadOnly все чтения внутри fn видят один снимок данных
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
