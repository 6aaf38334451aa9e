package admin_login

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/excursion-booking/internal/service/auth"
	"github.com/m04kA/excursion-booking/internal/service/auth/models"
	"github.com/m04kA/excursion-booking/pkg/logger"
)

type fakeAuth struct {
	err error
}

func (f *fakeAuth) Login(_ context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.LoginResponse{
		Token:     "token-for-" + req.Username,
		ExpiresAt: time.Date(2026, 6, 2, 21, 0, 0, 0, time.UTC),
	}, nil
}

func login(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", strings.NewReader(body)))
	return rec
}

func TestHandleSetsCookie(t *testing.T) {
	h := NewHandler(&fakeAuth{}, CookieConfig{Name: "admin_session", Secure: true}, logger.NewNop())

	rec := login(h, `{"username":"admin","password":"s3cret"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "token-for-admin", resp.Token)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "admin_session", cookies[0].Name)
	assert.Equal(t, "token-for-admin", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
}

func TestHandleErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"bad body", `{`, nil, http.StatusBadRequest},
		{"invalid input", `{"username":"admin"}`, auth.ErrInvalidInput, http.StatusBadRequest},
		{"invalid credentials", `{"username":"admin","password":"x"}`, auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"internal", `{"username":"admin","password":"x"}`, errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeAuth{err: tt.err}, CookieConfig{Name: "admin_session"}, logger.NewNop())
			rec := login(h, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Empty(t, rec.Result().Cookies())
		})
	}
}
