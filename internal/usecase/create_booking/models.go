package create_booking

import (
	"time"

	"github.com/m04kA/excursion-booking/internal/domain"
)

// Request модель заявки на экскурсию в том виде, в каком её прислал посетитель
type Request struct {
	RequesterName     string  `validate:"required,max=200"`
	InstitutionName   string  `validate:"required,max=200"`
	GroupLabel        string  `validate:"required,max=20"`
	GroupProfile      *string `validate:"omitempty,max=100"`
	ExcursionDate     string  `validate:"required"` // YYYY-MM-DD
	ContactPhone      string  `validate:"required,max=20"`
	ParticipantsCount int     `validate:"required,min=1,max=200"`
	Notes             *string `validate:"omitempty,max=2000"`
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID                int64
	RequesterName     string
	InstitutionName   string
	GroupLabel        string
	GroupProfile      *string
	ExcursionDate     time.Time
	ContactPhone      string
	ParticipantsCount int
	Notes             *string
	Status            domain.BookingStatus
	CreatedAt         time.Time

	RemainingSlots int // Сколько мест осталось на дату после этой заявки
}
