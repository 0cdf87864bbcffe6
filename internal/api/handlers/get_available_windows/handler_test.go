package get_available_windows

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
	getAvailableWindows "github.com/m04kA/SMC-WalkBookingService/internal/usecase/get_available_windows"
	"github.com/m04kA/SMC-WalkBookingService/pkg/logger"
	"github.com/m04kA/SMC-WalkBookingService/pkg/ptr"
)

type stubUseCase struct {
	resp *getAvailableWindows.Response
	err  error
	got  *getAvailableWindows.Request
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailableWindows.Request) (*getAvailableWindows.Response, error) {
	s.got = req
	return s.resp, s.err
}

func serve(uc *stubUseCase, query string) *httptest.ResponseRecorder {
	h := NewHandler(uc, logger.NewWriter(io.Discard, "error"))
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/availability"+query, nil))
	return rec
}

func TestHandle_OK(t *testing.T) {
	uc := &stubUseCase{resp: &getAvailableWindows.Response{
		Date:    time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
		Windows: []domain.DisplayWindow{{Start: "09:00", End: "10:45"}, {Start: "12:15", End: "20:00"}},
		WalkCap: getAvailableWindows.WalkCapInfo{
			State: domain.WalkCapEnforced, Limit: ptr.Ptr(4), Booked: 3, Remaining: ptr.Ptr(1),
		},
	}}

	rec := serve(uc, "?date=2025-06-12")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, 12, uc.got.Date.Day())

	var body AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-06-12", body.Date)
	assert.Equal(t, []WindowResponse{{"09:00", "10:45"}, {"12:15", "20:00"}}, body.Windows)
	assert.Equal(t, "enforced", body.WalkCap.State)
	assert.Equal(t, 1, *body.WalkCap.Remaining)
}

func TestHandle_EmptyWindowsIsArray(t *testing.T) {
	uc := &stubUseCase{resp: &getAvailableWindows.Response{Date: time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)}}

	rec := serve(uc, "?date=2025-06-12")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"windows":[]`)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name  string
		query string
		err   error
		want  int
	}{
		{name: "missing date", query: "", want: http.StatusBadRequest},
		{name: "bad date", query: "?date=12.06.2025", want: http.StatusBadRequest},
		{name: "past date", query: "?date=2025-06-12", err: getAvailableWindows.ErrInvalidDate, want: http.StatusBadRequest},
		{name: "too far", query: "?date=2025-06-12", err: getAvailableWindows.ErrDateTooFarInFuture, want: http.StatusBadRequest},
		{name: "feed down", query: "?date=2025-06-12", err: fmt.Errorf("%w: feed", getAvailableWindows.ErrInternal), want: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubUseCase{err: tt.err}, tt.query)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
