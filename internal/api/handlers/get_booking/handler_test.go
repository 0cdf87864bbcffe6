package get_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WalkBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-WalkBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-WalkBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-WalkBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-WalkBookingService/pkg/logger"
)

type stubService struct {
	err error
}

func (s *stubService) GetByID(_ context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingResponse{
		ID:          id,
		OwnerID:     userID,
		ServiceType: "walk",
		BookingType: "single",
		Date:        "2025-06-12",
		EndDate:     "2025-06-12",
		Status:      "confirmed",
	}, nil
}

func get(svc BookingService, path string, userID int64) *httptest.ResponseRecorder {
	return getWithLog(svc, path, userID, io.Discard)
}

func getWithLog(svc BookingService, path string, userID int64, out io.Writer) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/bookings/{bookingId}", NewHandler(svc, logger.NewWriter(out, "info")).Handle)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Success(t *testing.T) {
	rec := get(&stubService{}, "/bookings/9", 42)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(9), resp.ID)
	assert.Equal(t, int64(42), resp.OwnerID)
	assert.Equal(t, "walk", resp.ServiceType)
	assert.Equal(t, "2025-06-12", resp.Date)
}

func TestHandle_LogsWalkDetails(t *testing.T) {
	var buf bytes.Buffer
	rec := getWithLog(&stubService{}, "/bookings/9", 42, &buf)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, buf.String(), "booking_id=9, owner_id=42, service=walk, date=2025-06-12, status=confirmed")
}

func TestHandle_ForeignBookingHidesDetails(t *testing.T) {
	var buf bytes.Buffer
	rec := getWithLog(&stubService{err: bookings.ErrAccessDenied}, "/bookings/9", 42, &buf)

	require.Equal(t, http.StatusForbidden, rec.Code)
	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, msgForbidden, resp.Message)
	assert.NotContains(t, rec.Body.String(), "2025-06-12")
	assert.Contains(t, buf.String(), "Foreign booking: booking_id=9, owner_id=42")
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		userID int64
		err    error
		want   int
	}{
		{name: "bad id", path: "/bookings/x", userID: 42, want: http.StatusBadRequest},
		{name: "no user", path: "/bookings/9", want: http.StatusUnauthorized},
		{name: "not found", path: "/bookings/9", userID: 42, err: bookings.ErrBookingNotFound, want: http.StatusNotFound},
		{name: "forbidden", path: "/bookings/9", userID: 42, err: bookings.ErrAccessDenied, want: http.StatusForbidden},
		{name: "internal", path: "/bookings/9", userID: 42, err: bookings.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, get(&stubService{err: tt.err}, tt.path, tt.userID).Code)
		})
	}
}
