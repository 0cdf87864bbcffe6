package list_bookings

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WalkBookingService/internal/service/bookings"
	"github.com/m04kA/SMC-WalkBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-WalkBookingService/pkg/logger"
)

type stubService struct {
	err error
	got *models.ListByDateRequest
}

func (s *stubService) ListByDate(_ context.Context, req *models.ListByDateRequest) (*models.BookingListResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingListResponse{Bookings: []models.BookingResponse{}}, nil
}

func get(svc *stubService, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewWriter(io.Discard, "error")).Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	svc := &stubService{}
	rec := get(svc, "/admin/bookings?date=2025-06-03&status=cancelled")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2025-06-03", svc.got.Date.Format("2006-01-02"))
	require.NotNil(t, svc.got.Status)
	assert.Equal(t, "cancelled", *svc.got.Status)
	assert.JSONEq(t, `{"bookings":[]}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, get(&stubService{}, "/admin/bookings").Code)
	assert.Equal(t, http.StatusBadRequest, get(&stubService{}, "/admin/bookings?date=03.06.2025").Code)
	assert.Equal(t, http.StatusBadRequest, get(&stubService{err: bookings.ErrInvalidInput}, "/admin/bookings?date=2025-06-03&status=x").Code)
	assert.Equal(t, http.StatusInternalServerError, get(&stubService{err: bookings.ErrInternal}, "/admin/bookings?date=2025-06-03").Code)
}
