package block_date

import (
	"context"

	"github.com/m04kA/excursion-booking/internal/service/blockeddates/models"
)

type BlockedDateService interface {
	Block(ctx context.Context, req *models.BlockRequest) (*models.BlockResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
