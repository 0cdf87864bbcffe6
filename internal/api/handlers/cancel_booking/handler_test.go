package cancel_booking

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WalkBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-WalkBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-WalkBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-WalkBookingService/pkg/logger"
)

type stubService struct {
	err       error
	cancelled int
	gotID     int64
	gotSeries string
	got       *models.CancelBookingRequest
}

func (s *stubService) Cancel(_ context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.gotID = bookingID
	s.got = req
	return s.err
}

func (s *stubService) CancelSeries(_ context.Context, seriesID string, req *models.CancelBookingRequest) (int, error) {
	s.gotSeries = seriesID
	s.got = req
	return s.cancelled, s.err
}

func serve(h *Handler, path, body string, userID int64) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/bookings/series/{seriesId}/cancel", h.HandleSeries).Methods(http.MethodPatch)
	router.HandleFunc("/bookings/{bookingId}/cancel", h.Handle).Methods(http.MethodPatch)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(http.MethodPatch, path, reader)
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func quiet() *logger.Logger {
	return logger.NewWriter(io.Discard, "error")
}

func TestHandle_WithReason(t *testing.T) {
	svc := &stubService{}
	rec := serve(NewHandler(svc, quiet()), "/bookings/7/cancel", `{"cancellationReason":"dog is ill"}`, 42)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), svc.gotID)
	assert.Equal(t, int64(42), svc.got.UserID)
	assert.False(t, svc.got.Admin)
	require.NotNil(t, svc.got.CancellationReason)
	assert.Equal(t, "dog is ill", *svc.got.CancellationReason)
}

func TestHandle_EmptyBody(t *testing.T) {
	svc := &stubService{}
	rec := serve(NewHandler(svc, quiet()), "/bookings/7/cancel", "", 42)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.got.CancellationReason)
}

func TestHandle_AdminWithoutUser(t *testing.T) {
	svc := &stubService{}
	rec := serve(NewAdminHandler(svc, quiet()), "/bookings/7/cancel", "", 0)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.got.Admin)
}

func TestHandleSeries(t *testing.T) {
	svc := &stubService{cancelled: 3}
	rec := serve(NewHandler(svc, quiet()), "/bookings/series/abc-123/cancel", "", 42)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc-123", svc.gotSeries)

	var resp CancelSeriesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "abc-123", resp.SeriesID)
	assert.Equal(t, 3, resp.Cancelled)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		userID int64
		err    error
		want   int
	}{
		{name: "bad id", path: "/bookings/0/cancel", userID: 42, want: http.StatusBadRequest},
		{name: "no user", path: "/bookings/7/cancel", want: http.StatusUnauthorized},
		{name: "unknown field", path: "/bookings/7/cancel", body: `{"reason":"x"}`, userID: 42, want: http.StatusBadRequest},
		{name: "reason too long", path: "/bookings/7/cancel", body: `{"cancellationReason":"` + strings.Repeat("x", 501) + `"}`, userID: 42, want: http.StatusBadRequest},
		{name: "not found", path: "/bookings/7/cancel", userID: 42, err: bookings.ErrBookingNotFound, want: http.StatusNotFound},
		{name: "series not found", path: "/bookings/series/abc/cancel", userID: 42, err: bookings.ErrSeriesNotFound, want: http.StatusNotFound},
		{name: "forbidden", path: "/bookings/7/cancel", userID: 42, err: bookings.ErrAccessDenied, want: http.StatusForbidden},
		{name: "cannot cancel", path: "/bookings/7/cancel", userID: 42, err: bookings.ErrCannotCancel, want: http.StatusBadRequest},
		{name: "internal", path: "/bookings/7/cancel", userID: 42, err: bookings.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&stubService{err: tt.err}, quiet()), tt.path, tt.body, tt.userID)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
