package cancel_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-WalkBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-WalkBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-WalkBookingService/internal/service/bookings"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgSeriesNotFound     = "серия бронирований не найдена"
	msgForbidden          = "доступ запрещен"
	msgCannotCancel       = "бронирование не может быть отменено"
	msgInvalidInput       = "некорректная причина отмены"
)

type Handler struct {
	service BookingService
	logger  Logger
	admin   bool
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// NewAdminHandler отменяет любые бронирования без проверки владельца
func NewAdminHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		admin:   true,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/cancel, PATCH /api/v1/admin/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, req, ok := h.decode(w, r)
	if !ok {
		return
	}

	if err := h.service.Cancel(r.Context(), bookingID, req.ToServiceRequest(userID, h.admin)); err != nil {
		h.respondError(w, err, msgNotFound)
		return
	}

	h.logger.Info("PATCH /bookings/{id}/cancel - Booking cancelled: booking_id=%d, user_id=%d, admin=%t", bookingID, userID, h.admin)
	handlers.RespondJSON(w, http.StatusOK, nil)
}

// HandleSeries PATCH /api/v1/bookings/series/{seriesId}/cancel
func (h *Handler) HandleSeries(w http.ResponseWriter, r *http.Request) {
	seriesID := mux.Vars(r)["seriesId"]

	userID, req, ok := h.decode(w, r)
	if !ok {
		return
	}

	cancelled, err := h.service.CancelSeries(r.Context(), seriesID, req.ToServiceRequest(userID, h.admin))
	if err != nil {
		h.respondError(w, err, msgSeriesNotFound)
		return
	}

	h.logger.Info("PATCH /bookings/series/{id}/cancel - Series cancelled: series_id=%s, cancelled=%d", seriesID, cancelled)
	handlers.RespondJSON(w, http.StatusOK, CancelSeriesResponse{SeriesID: seriesID, Cancelled: cancelled})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (int64, *CancelBookingRequest, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok && !h.admin {
		h.logger.Warn("PATCH cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return 0, nil, false
	}

	// Тело необязательно: отмена без причины
	req := &CancelBookingRequest{}
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, req); err != nil {
			h.logger.Warn("PATCH cancel - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return 0, nil, false
		}
	}

	return userID, req, true
}

func (h *Handler) respondError(w http.ResponseWriter, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, bookings.ErrBookingNotFound), errors.Is(err, bookings.ErrSeriesNotFound):
		h.logger.Warn("PATCH cancel - Not found: %v", err)
		handlers.RespondNotFound(w, notFoundMsg)

	case errors.Is(err, bookings.ErrAccessDenied):
		h.logger.Warn("PATCH cancel - Access denied: %v", err)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, bookings.ErrCannotCancel):
		h.logger.Warn("PATCH cancel - Cannot cancel: %v", err)
		handlers.RespondBadRequest(w, msgCannotCancel)

	case errors.Is(err, bookings.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("PATCH cancel - Failed to cancel: %v", err)
		handlers.RespondInternalError(w)
	}
}
