package models

import (
	"time"

	"github.com/m04kA/excursion-booking/internal/domain"
)

// BlockRequest запрос на блокировку даты
type BlockRequest struct {
	Date   string  `json:"date" validate:"required"` // YYYY-MM-DD
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// ListRequest период для списка блокировок, границы опциональны
type ListRequest struct {
	From *string `json:"from,omitempty"`
	To   *string `json:"to,omitempty"`
}

// BlockedDateResponse заблокированная дата
type BlockedDateResponse struct {
	Date      string    `json:"date"`
	Weekday   string    `json:"weekday"`
	Reason    *string   `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// BlockResponse результат блокировки
type BlockResponse struct {
	Date    string `json:"date"`
	Created bool   `json:"created"` // false, если дата уже была заблокирована
}

// BlockedDateListResponse список заблокированных дат
type BlockedDateListResponse struct {
	Dates []BlockedDateResponse `json:"dates"`
}

// FromDomainList конвертирует список domain моделей в DTO
func FromDomainList(items []*domain.BlockedDate) *BlockedDateListResponse {
	resp := &BlockedDateListResponse{
		Dates: make([]BlockedDateResponse, 0, len(items)),
	}

	for _, item := range items {
		resp.Dates = append(resp.Dates, BlockedDateResponse{
			Date:      domain.DateKey(item.Date),
			Weekday:   domain.WeekdaysFull[domain.MondayIndex(item.Date.Weekday())],
			Reason:    item.Reason,
			CreatedAt: item.CreatedAt,
		})
	}

	return resp
}
