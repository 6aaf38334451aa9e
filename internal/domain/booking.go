package domain

import (
	"errors"
	"time"
)

// ErrInvalidStatus возвращается при разборе неизвестного статуса
var ErrInvalidStatus = errors.New("domain: invalid booking status")

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// ParseBookingStatus converts a raw string into a known BookingStatus
func ParseBookingStatus(raw string) (BookingStatus, error) {
	s := BookingStatus(raw)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// IsValid reports whether the status is one of the known values
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsActive returns true if a booking in this status occupies capacity
func (s BookingStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// CanTransitionTo reports whether an administrator may move a booking
// from s to next. Any known status may be reassigned to any other;
// the only thing checked separately is capacity on reactivation.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	return s.IsValid() && next.IsValid()
}

// IsReactivation returns true when a cancelled booking becomes active again
func (s BookingStatus) IsReactivation(next BookingStatus) bool {
	return s == StatusCancelled && next.IsActive()
}

// Booking represents an excursion booking
type Booking struct {
	ID                int64
	RequesterName     string
	InstitutionName   string
	GroupLabel        string  // класс / группа, например "10А"
	GroupProfile      *string // профиль класса (опционально)
	ExcursionDate     time.Time
	ContactPhone      string
	ParticipantsCount int
	Notes             *string
	Status            BookingStatus
	CreatedAt         time.Time
}

// IsActive returns true if the booking counts against the date capacity
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// BookingsFilter фильтр для списка бронирований в админке
type BookingsFilter struct {
	From             *time.Time     // Начало периода по дате экскурсии (опционально)
	To               *time.Time     // Конец периода (опционально)
	Status           *BookingStatus // Фильтр по статусу (опционально)
	IncludeCancelled bool           // Включать ли отменённые, если статус не указан
}
