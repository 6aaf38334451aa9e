package get_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/excursion-booking/internal/service/bookings"
	"github.com/m04kA/excursion-booking/internal/service/bookings/models"
	"github.com/m04kA/excursion-booking/pkg/logger"
)

type fakeService struct{}

func (fakeService) GetByID(_ context.Context, id int64) (*models.BookingResponse, error) {
	if id != 7 {
		return nil, bookings.ErrBookingNotFound
	}
	return &models.BookingResponse{ID: 7, Status: "confirmed"}, nil
}

func get(path string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/admin/bookings/{bookingId}", NewHandler(fakeService{}, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandle(t *testing.T) {
	rec := get("/api/v1/admin/bookings/7")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)

	assert.Equal(t, http.StatusNotFound, get("/api/v1/admin/bookings/8").Code)
	assert.Equal(t, http.StatusBadRequest, get("/api/v1/admin/bookings/abc").Code)
}
