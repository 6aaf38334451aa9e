package unblock_date

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/excursion-booking/internal/service/blockeddates"
	"github.com/m04kA/excursion-booking/pkg/logger"
)

type fakeService struct {
	blocked map[string]bool
}

func (f *fakeService) Unblock(_ context.Context, rawDate string) error {
	if len(rawDate) != len("2006-01-02") {
		return blockeddates.ErrInvalidInput
	}
	if !f.blocked[rawDate] {
		return blockeddates.ErrNotBlocked
	}
	delete(f.blocked, rawDate)
	return nil
}

func TestHandle(t *testing.T) {
	svc := &fakeService{blocked: map[string]bool{"2026-10-05": true}}

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/admin/blocked-dates/{date}", NewHandler(svc, logger.NewNop()).Handle).
		Methods(http.MethodDelete)

	do := func(path string) int {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, path, nil))
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, do("/api/v1/admin/blocked-dates/2026-10-05"))
	assert.Equal(t, http.StatusNotFound, do("/api/v1/admin/blocked-dates/2026-10-05"))
	assert.Equal(t, http.StatusBadRequest, do("/api/v1/admin/blocked-dates/5-10-2026"))
}
