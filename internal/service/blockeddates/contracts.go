package blockeddates

import (
	"context"
	"time"

	"github.com/m04kA/excursion-booking/internal/domain"
)

// BlockedDateRepository интерфейс репозитория заблокированных дат
type BlockedDateRepository interface {
	Add(ctx context.Context, date time.Time, reason *string) (bool, error)
	Remove(ctx context.Context, date time.Time) error
	List(ctx context.Context, from, to *time.Time) ([]*domain.BlockedDate, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
