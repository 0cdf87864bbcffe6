package get_owner_bookings

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WalkBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-WalkBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-WalkBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-WalkBookingService/pkg/logger"
)

type stubService struct {
	err error
	got *models.GetOwnerBookingsRequest
}

func (s *stubService) GetOwnerBookings(_ context.Context, req *models.GetOwnerBookingsRequest) (*models.BookingListResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingListResponse{Bookings: []models.BookingResponse{{ID: 1, OwnerID: req.OwnerID}}}, nil
}

func get(svc *stubService, target string, userID int64) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if userID > 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewWriter(io.Discard, "error")).Handle(rec, req)
	return rec
}

func TestHandle(t *testing.T) {
	svc := &stubService{}
	rec := get(svc, "/bookings?status=confirmed", 42)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), svc.got.OwnerID)
	require.NotNil(t, svc.got.Status)
	assert.Equal(t, "confirmed", *svc.got.Status)
	assert.Contains(t, rec.Body.String(), `"ownerId":42`)
}

func TestHandle_NoFilter(t *testing.T) {
	svc := &stubService{}
	require.Equal(t, http.StatusOK, get(svc, "/bookings", 42).Code)
	assert.Nil(t, svc.got.Status)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, get(&stubService{}, "/bookings", 0).Code)
	assert.Equal(t, http.StatusBadRequest, get(&stubService{err: bookings.ErrInvalidInput}, "/bookings?status=lost", 42).Code)
	assert.Equal(t, http.StatusInternalServerError, get(&stubService{err: bookings.ErrInternal}, "/bookings", 42).Code)
}
