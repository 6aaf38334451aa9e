package list_blocked_dates

import (
	"context"

	"github.com/m04kA/excursion-booking/internal/service/blockeddates/models"
)

type BlockedDateService interface {
	List(ctx context.Context, req *models.ListRequest) (*models.BlockedDateListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
