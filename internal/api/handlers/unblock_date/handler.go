package unblock_date

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/excursion-booking/internal/api/handlers"
	"github.com/m04kA/excursion-booking/internal/api/middleware"
	"github.com/m04kA/excursion-booking/internal/service/blockeddates"
)

const (
	msgInvalidDate = "некорректная дата, ожидается YYYY-MM-DD"
	msgNotBlocked  = "дата не заблокирована"
)

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

// Handle DELETE /api/v1/admin/blocked-dates/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]

	if err := h.service.Unblock(r.Context(), date); err != nil {
		switch {
		case errors.Is(err, blockeddates.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, blockeddates.ErrNotBlocked):
			handlers.RespondNotFound(w, msgNotBlocked)

		case errors.Is(err, blockeddates.ErrInternal):
			h.logger.Error("DELETE /admin/blocked-dates/{date} - Storage unavailable: date=%q, error=%v", date, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("DELETE /admin/blocked-dates/{date} - Failed to unblock: date=%q, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	admin, _ := middleware.GetAdmin(r.Context())
	h.logger.Info("DELETE /admin/blocked-dates/{date} - Date unblocked: date=%s, admin=%q", date, admin)
	w.WriteHeader(http.StatusNoContent)
}
