package reschedule_booking

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WalkBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
	"github.com/m04kA/SMC-WalkBookingService/internal/service/bookings/models"
	rescheduleBooking "github.com/m04kA/SMC-WalkBookingService/internal/usecase/reschedule_booking"
	"github.com/m04kA/SMC-WalkBookingService/pkg/logger"
)

type stubUseCase struct {
	err error
	got *rescheduleBooking.Request
}

func (s *stubUseCase) Execute(_ context.Context, req *rescheduleBooking.Request) (*rescheduleBooking.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &rescheduleBooking.Response{Booking: &domain.Booking{
		ID: req.BookingID, OwnerID: 42, Status: domain.StatusConfirmed,
		Date: req.Date, EndDate: req.Date,
		Start: req.StartTime.On(req.Date, time.UTC), End: req.EndTime.On(req.Date, time.UTC),
	}}, nil
}

func patch(h *Handler, path, body string, userID int64) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/bookings/{bookingId}/reschedule", h.Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body))
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

const body = `{"date":"2025-06-13","startTime":"14:00","endTime":"14:30"}`

func TestHandle_Public(t *testing.T) {
	uc := &stubUseCase{}
	rec := patch(NewHandler(uc, logger.NewWriter(io.Discard, "error")), "/bookings/5/reschedule", body, 42)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), uc.got.BookingID)
	assert.Equal(t, int64(42), uc.got.OwnerID)
	assert.False(t, uc.got.Admin)

	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-06-13", resp.Date)
	assert.Equal(t, "14:30", resp.EndTime)
}

func TestHandle_Admin(t *testing.T) {
	uc := &stubUseCase{}
	rec := patch(NewAdminHandler(uc, logger.NewWriter(io.Discard, "error")), "/bookings/5/reschedule", body, 0)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, uc.got.Admin)
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
		{name: "bad id", path: "/bookings/abc/reschedule", body: body, userID: 42, want: http.StatusBadRequest},
		{name: "no user", path: "/bookings/5/reschedule", body: body, want: http.StatusUnauthorized},
		{name: "missing end", path: "/bookings/5/reschedule", body: `{"date":"2025-06-13","startTime":"14:00"}`, userID: 42, want: http.StatusBadRequest},
		{name: "not found", path: "/bookings/5/reschedule", body: body, userID: 42, err: rescheduleBooking.ErrBookingNotFound, want: http.StatusNotFound},
		{name: "forbidden", path: "/bookings/5/reschedule", body: body, userID: 42, err: rescheduleBooking.ErrAccessDenied, want: http.StatusForbidden},
		{name: "walk limit", path: "/bookings/5/reschedule", body: body, userID: 42, err: rescheduleBooking.ErrWalkLimitReached, want: http.StatusConflict},
		{name: "slot taken", path: "/bookings/5/reschedule", body: body, userID: 42, err: rescheduleBooking.ErrSlotTaken, want: http.StatusConflict},
		{name: "cannot reschedule", path: "/bookings/5/reschedule", body: body, userID: 42, err: rescheduleBooking.ErrCannotReschedule, want: http.StatusBadRequest},
		{name: "internal", path: "/bookings/5/reschedule", body: body, userID: 42, err: rescheduleBooking.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := patch(NewHandler(&stubUseCase{err: tt.err}, logger.NewWriter(io.Discard, "error")), tt.path, tt.body, tt.userID)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
