package get_calendar

import (
	"errors"
	"net/http"

	"github.com/m04kA/excursion-booking/internal/api/handlers"
	getCalendar "github.com/m04kA/excursion-booking/internal/usecase/get_calendar"
)

const (
	msgInvalidParams = "некорректные параметры запроса, year и month должны быть числами"
	msgInvalidMonth  = "некорректный месяц: month от 1 до 12, year от 1 до 9999"
)

type Handler struct {
	useCase GetCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendar
// Query params: year, month (опционально, по умолчанию текущий месяц)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req, err := ToUseCaseRequest(query.Get("year"), query.Get("month"))
	if err != nil {
		h.logger.Warn("GET /calendar - Invalid parameters: year=%q, month=%q", query.Get("year"), query.Get("month"))
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getCalendar.ErrInvalidArgument):
			h.logger.Warn("GET /calendar - Invalid month: year=%d, month=%d", req.Year, req.Month)
			handlers.RespondBadRequest(w, msgInvalidMonth)

		case errors.Is(err, getCalendar.ErrInternal):
			h.logger.Error("GET /calendar - Storage unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /calendar - Failed to build calendar: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
