package get_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WalkBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-WalkBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-WalkBookingService/internal/service/bookings"
)

const (
	msgMissingUserID    = "отсутствует ID владельца собаки"
	msgInvalidBookingID = "некорректный ID бронирования"
	msgNotFound         = "бронирование прогулки не найдено"
	msgForbidden        = "бронирование принадлежит другому владельцу"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{bookingId}
// Владелец видит только свои прогулки и передержки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id} - Missing owner ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("GET /bookings/{id} - Invalid booking ID: owner_id=%d, %v", ownerID, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	booking, err := h.service.GetByID(r.Context(), bookingID, ownerID)
	switch {
	case err == nil:
		h.logger.Info("GET /bookings/{id} - Booking retrieved: booking_id=%d, owner_id=%d, service=%s, date=%s, status=%s",
			bookingID, ownerID, booking.ServiceType, booking.Date, booking.Status)
		handlers.RespondJSON(w, http.StatusOK, booking)

	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("GET /bookings/{id} - Booking not found: booking_id=%d", bookingID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, bookings.ErrAccessDenied):
		// не раскрываем чужую бронь: ни даты, ни собаки
		h.logger.Warn("GET /bookings/{id} - Foreign booking: booking_id=%d, owner_id=%d", bookingID, ownerID)
		handlers.RespondForbidden(w, msgForbidden)

	default:
		h.logger.Error("GET /bookings/{id} - Failed to load booking: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
	}
}
