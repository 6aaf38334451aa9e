package export_bookings

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/excursion-booking/internal/service/bookings"
	"github.com/m04kA/excursion-booking/internal/service/bookings/models"
	"github.com/m04kA/excursion-booking/pkg/export"
	"github.com/m04kA/excursion-booking/pkg/logger"
)

type fakeService struct {
	req *models.ListRequest
	err error
}

func (f *fakeService) Export(_ context.Context, req *models.ListRequest) (export.Dataset, error) {
	f.req = req
	if f.err != nil {
		return export.Dataset{}, f.err
	}
	return export.Dataset{
		Headers: []string{models.ColumnID, models.ColumnExcursionDate},
		Rows: []map[string]string{
			{models.ColumnID: "1", models.ColumnExcursionDate: "03.06.2026"},
		},
	}, nil
}

func newTestHandler(svc *fakeService) *Handler {
	return NewHandler(svc, map[string]Exporter{
		"csv":  export.NewCSVExporter(),
		"json": export.NewJSONExporter(),
	}, logger.NewNop())
}

func TestHandleCSVByDefault(t *testing.T) {
	svc := &fakeService{}
	rec := httptest.NewRecorder()
	newTestHandler(svc).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings/export?from=2026-06-01", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.NewCSVExporter().ContentType(), rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment; filename=\"bookings_")
	assert.True(t, strings.HasSuffix(rec.Header().Get("Content-Disposition"), ".csv\""))
	assert.Contains(t, rec.Body.String(), "03.06.2026")
	require.NotNil(t, svc.req.From)
	assert.Equal(t, "2026-06-01", *svc.req.From)
}

func TestHandleJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestHandler(&fakeService{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings/export?format=JSON", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "1", rows[0][models.ColumnID])
}

func TestHandleErrors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		err    error
		status int
	}{
		{"unknown format", "?format=xlsx", nil, http.StatusBadRequest},
		{"bad bool", "?includeCancelled=sometimes", nil, http.StatusBadRequest},
		{"bad filter", "?from=june", fmt.Errorf("%w: from", bookings.ErrInvalidInput), http.StatusBadRequest},
		{"storage", "", fmt.Errorf("%w: timeout", bookings.ErrInternal), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newTestHandler(&fakeService{err: tt.err}).
				Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings/export"+tt.query, nil))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
