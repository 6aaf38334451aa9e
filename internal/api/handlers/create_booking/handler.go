package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/excursion-booking/internal/api/handlers"
	createBooking "github.com/m04kA/excursion-booking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingField       = "заполните все обязательные поля"
	msgFieldOutOfRange    = "одно из полей заполнено некорректно: слишком длинное значение или недопустимое число участников"
	msgMalformedDate      = "некорректная дата экскурсии, ожидается YYYY-MM-DD"
	msgInvalidInput       = "некорректные данные заявки"
	msgPastDate           = "нельзя записаться на прошедшую дату"
	msgClosedWeekday      = "в этот день недели экскурсии не проводятся"
	msgBlockedDate        = "на эту дату запись закрыта"
	msgCapacityExceeded   = "на эту дату не осталось свободных мест"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrMissingField):
			handlers.RespondBadRequest(w, msgMissingField)

		case errors.Is(err, createBooking.ErrFieldOutOfRange):
			handlers.RespondBadRequest(w, msgFieldOutOfRange)

		case errors.Is(err, createBooking.ErrMalformedDate):
			handlers.RespondBadRequest(w, msgMalformedDate)

		case errors.Is(err, createBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrPastDate):
			handlers.RespondUnprocessable(w, msgPastDate)

		case errors.Is(err, createBooking.ErrClosedWeekday):
			handlers.RespondUnprocessable(w, msgClosedWeekday)

		case errors.Is(err, createBooking.ErrBlockedDate):
			handlers.RespondConflict(w, msgBlockedDate)

		case errors.Is(err, createBooking.ErrCapacityExceeded):
			handlers.RespondConflict(w, msgCapacityExceeded)

		case errors.Is(err, createBooking.ErrInternal):
			h.logger.Error("POST /bookings - Storage unavailable: date=%q, error=%v", req.ExcursionDate, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: date=%q, error=%v", req.ExcursionDate, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, date=%s",
		result.ID, req.ExcursionDate)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
