package block_date

import (
	"errors"
	"net/http"

	"github.com/m04kA/excursion-booking/internal/api/handlers"
	"github.com/m04kA/excursion-booking/internal/api/middleware"
	"github.com/m04kA/excursion-booking/internal/service/blockeddates"
	"github.com/m04kA/excursion-booking/internal/service/blockeddates/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректная дата (YYYY-MM-DD) или слишком длинная причина (до 500 символов)"
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

// Handle POST /api/v1/admin/blocked-dates
// 201 - дата заблокирована, 200 - уже была заблокирована
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.BlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/blocked-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Block(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, blockeddates.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, blockeddates.ErrInternal):
			h.logger.Error("POST /admin/blocked-dates - Storage unavailable: date=%q, error=%v", req.Date, err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("POST /admin/blocked-dates - Failed to block date: date=%q, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
		admin, _ := middleware.GetAdmin(r.Context())
		h.logger.Info("POST /admin/blocked-dates - Date blocked: date=%s, admin=%q", result.Date, admin)
	}

	handlers.RespondJSON(w, status, result)
}
