package export_bookings

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/excursion-booking/internal/api/handlers"
	"github.com/m04kA/excursion-booking/internal/service/bookings"
)

const (
	msgInvalidParams = "некорректные параметры выгрузки"
	msgUnknownFormat = "неизвестный формат выгрузки, допустимы: "
)

type Handler struct {
	service   BookingService
	exporters map[string]Exporter
	logger    Logger
}

// NewHandler exporters - форматы выгрузки по имени query параметра format
func NewHandler(service BookingService, exporters map[string]Exporter, logger Logger) *Handler {
	return &Handler{
		service:   service,
		exporters: exporters,
		logger:    logger,
	}
}

// Handle GET /api/v1/admin/bookings/export
// Query params: format (csv|json|pdf, по умолчанию csv), from, to, status, includeCancelled
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	format, req, err := ParseQuery(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /admin/bookings/export - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	exporter, ok := h.exporters[format]
	if !ok {
		h.logger.Warn("GET /admin/bookings/export - Unknown format: %q", format)
		handlers.RespondBadRequest(w, msgUnknownFormat+strings.Join(h.formats(), ", "))
		return
	}

	dataset, err := h.service.Export(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, bookings.ErrInternal):
			h.logger.Error("GET /admin/bookings/export - Storage unavailable: %v", err)
			handlers.RespondServiceUnavailable(w)

		default:
			h.logger.Error("GET /admin/bookings/export - Failed to export: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	content, err := exporter.Render(dataset)
	if err != nil {
		h.logger.Error("GET /admin/bookings/export - Failed to render %s: %v", format, err)
		handlers.RespondInternalError(w)
		return
	}

	filename := fmt.Sprintf("bookings_%s.%s", time.Now().Format("20060102_150405"), exporter.Extension())

	w.Header().Set("Content-Type", exporter.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)

	h.logger.Info("GET /admin/bookings/export - Exported %d rows as %s", len(dataset.Rows), format)
}

func (h *Handler) formats() []string {
	names := make([]string, 0, len(h.exporters))
	for name := range h.exporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
