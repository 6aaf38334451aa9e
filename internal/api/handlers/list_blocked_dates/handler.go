package list_blocked_dates

import (
	"errors"
	"net/http"

	"github.com/m04kA/excursion-booking/internal/api/handlers"
	"github.com/m04kA/excursion-booking/internal/service/blockeddates"
	"github.com/m04kA/excursion-booking/internal/service/blockeddates/models"
)

const msgInvalidParams = "некорректный период, ожидаются даты в формате YYYY-MM-DD"

type Handler struct {
	service BlockedDateService
	logger  Logger
}

func NewHandler(service BlockedDateService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/blocked-dates
// Query params: from, to (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListRequest{}
	if from := r.URL.Query().Get("from"); from != "" {
		req.From = &from
	}
	if to := r.URL.Query().Get("to"); to != "" {
		req.To = &to
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, blockeddates.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, blockeddates.ErrInternal):
			h.logger.Error("GET /admin/blocked-dates - Storage unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /admin/blocked-dates - Failed to list: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
