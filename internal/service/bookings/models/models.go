package models

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/excursion-booking/internal/domain"
)

var (
	// ErrInvalidDate возвращается при дате не в формате YYYY-MM-DD
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

	// ErrInvalidPeriod возвращается, когда начало периода позже конца
	ErrInvalidPeriod = errors.New("period start is after period end")
)

// Request модели

// ListRequest фильтр списка бронирований в админке
type ListRequest struct {
	From             *string `json:"from,omitempty"`   // YYYY-MM-DD (опционально)
	To               *string `json:"to,omitempty"`     // YYYY-MM-DD (опционально)
	Status           *string `json:"status,omitempty"` // Фильтр по статусу (опционально)
	IncludeCancelled bool    `json:"includeCancelled,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{IncludeCancelled: r.IncludeCancelled}

	if r.From != nil {
		from, err := domain.ParseDate(*r.From)
		if err != nil {
			return filter, fmt.Errorf("%w: from=%q", ErrInvalidDate, *r.From)
		}
		filter.From = &from
	}

	if r.To != nil {
		to, err := domain.ParseDate(*r.To)
		if err != nil {
			return filter, fmt.Errorf("%w: to=%q", ErrInvalidDate, *r.To)
		}
		filter.To = &to
	}

	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return filter, ErrInvalidPeriod
	}

	if r.Status != nil {
		status, err := domain.ParseBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateStatusRequest запрос на изменение статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                int64     `json:"id"`
	RequesterName     string    `json:"requesterName"`
	InstitutionName   string    `json:"institutionName"`
	GroupLabel        string    `json:"groupLabel"`
	GroupProfile      *string   `json:"groupProfile,omitempty"`
	ExcursionDate     string    `json:"excursionDate"` // "2026-06-03"
	ContactPhone      string    `json:"contactPhone"`
	ParticipantsCount int       `json:"participantsCount"`
	Notes             *string   `json:"notes,omitempty"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:                b.ID,
		RequesterName:     b.RequesterName,
		InstitutionName:   b.InstitutionName,
		GroupLabel:        b.GroupLabel,
		GroupProfile:      b.GroupProfile,
		ExcursionDate:     b.ExcursionDate.Format(domain.DateFormat),
		ContactPhone:      b.ContactPhone,
		ParticipantsCount: b.ParticipantsCount,
		Notes:             b.Notes,
		Status:            string(b.Status),
		CreatedAt:         b.CreatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}
	resp.Total = len(resp.Bookings)

	return resp
}

// Колонки выгрузки
const (
	ColumnID            = "ID"
	ColumnExcursionDate = "Дата экскурсии"
	ColumnInstitution   = "Учреждение"
	ColumnGroup         = "Класс"
	ColumnProfile       = "Профиль"
	ColumnRequester     = "Контактное лицо"
	ColumnPhone         = "Телефон"
	ColumnParticipants  = "Участников"
	ColumnStatus        = "Статус"
	ColumnNotes         = "Комментарий"
	ColumnCreatedAt     = "Создана"
)

// ExportHeaders порядок колонок выгрузки
var ExportHeaders = []string{
	ColumnID,
	ColumnExcursionDate,
	ColumnInstitution,
	ColumnGroup,
	ColumnProfile,
	ColumnRequester,
	ColumnPhone,
	ColumnParticipants,
	ColumnStatus,
	ColumnNotes,
	ColumnCreatedAt,
}

// ToExportRow конвертирует бронирование в строку выгрузки, время создания в loc
func ToExportRow(b *domain.Booking, loc *time.Location) map[string]string {
	status := domain.StatusTitles[b.Status]
	if status == "" {
		status = string(b.Status)
	}

	return map[string]string{
		ColumnID:            strconv.FormatInt(b.ID, 10),
		ColumnExcursionDate: b.ExcursionDate.Format(domain.DisplayDateFormat),
		ColumnInstitution:   b.InstitutionName,
		ColumnGroup:         b.GroupLabel,
		ColumnProfile:       deref(b.GroupProfile),
		ColumnRequester:     b.RequesterName,
		ColumnPhone:         b.ContactPhone,
		ColumnParticipants:  strconv.Itoa(b.ParticipantsCount),
		ColumnStatus:        status,
		ColumnNotes:         deref(b.Notes),
		ColumnCreatedAt:     b.CreatedAt.In(loc).Format("02.01.2006 15:04"),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
