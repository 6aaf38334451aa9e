package create_booking

import (
	"time"

	"github.com/m04kA/excursion-booking/internal/domain"
	createBooking "github.com/m04kA/excursion-booking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	RequesterName     string  `json:"requesterName"`
	InstitutionName   string  `json:"institutionName"`
	GroupLabel        string  `json:"groupLabel"`
	GroupProfile      *string `json:"groupProfile,omitempty"`
	ExcursionDate     string  `json:"excursionDate"` // "2026-06-03"
	ContactPhone      string  `json:"contactPhone"`
	ParticipantsCount int     `json:"participantsCount"`
	Notes             *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                int64   `json:"id"`
	RequesterName     string  `json:"requesterName"`
	InstitutionName   string  `json:"institutionName"`
	GroupLabel        string  `json:"groupLabel"`
	GroupProfile      *string `json:"groupProfile,omitempty"`
	ExcursionDate     string  `json:"excursionDate"`
	ContactPhone      string  `json:"contactPhone"`
	ParticipantsCount int     `json:"participantsCount"`
	Notes             *string `json:"notes,omitempty"`
	Status            string  `json:"status"`
	RemainingSlots    int     `json:"remainingSlots"`
	CreatedAt         string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// Дата передаётся строкой, её разбор и проверка - часть приёма заявки
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		RequesterName:     r.RequesterName,
		InstitutionName:   r.InstitutionName,
		GroupLabel:        r.GroupLabel,
		GroupProfile:      r.GroupProfile,
		ExcursionDate:     r.ExcursionDate,
		ContactPhone:      r.ContactPhone,
		ParticipantsCount: r.ParticipantsCount,
		Notes:             r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                resp.ID,
		RequesterName:     resp.RequesterName,
		InstitutionName:   resp.InstitutionName,
		GroupLabel:        resp.GroupLabel,
		GroupProfile:      resp.GroupProfile,
		ExcursionDate:     resp.ExcursionDate.Format(domain.DateFormat),
		ContactPhone:      resp.ContactPhone,
		ParticipantsCount: resp.ParticipantsCount,
		Notes:             resp.Notes,
		Status:            string(resp.Status),
		RemainingSlots:    resp.RemainingSlots,
		CreatedAt:         resp.CreatedAt.Format(time.RFC3339),
	}
}
