package export_bookings

import (
	"context"

	"github.com/m04kA/excursion-booking/internal/service/bookings/models"
	"github.com/m04kA/excursion-booking/pkg/export"
)

type BookingService interface {
	Export(ctx context.Context, req *models.ListRequest) (export.Dataset, error)
}

// Exporter формирует файл выгрузки
type Exporter interface {
	Render(data export.Dataset) ([]byte, error)
	ContentType() string
	Extension() string
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
