package reschedule_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WalkBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-WalkBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-WalkBookingService/internal/service/bookings/models"
	rescheduleBooking "github.com/m04kA/SMC-WalkBookingService/internal/usecase/reschedule_booking"
)

const (
	msgInvalidBookingID    = "некорректный ID бронирования"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateTime     = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgNotFound            = "бронирование не найдено"
	msgForbidden           = "доступ запрещен"
	msgCannotReschedule    = "перенести можно только подтверждённый разовый визит"
	msgInvalidInput        = "некорректные данные переноса"
	msgInvalidBookingDate  = "нельзя перенести на прошедшую дату"
	msgDateTooFar          = "дата слишком далеко в будущем"
	msgTooLateToBook       = "слишком поздно для бронирования на это время"
	msgOutsideWorkingHours = "выбранное время вне рабочих часов"
	msgWalkLimitReached    = "на эту дату прогулки закончились: идёт передержка и дневной лимит прогулок исчерпан"
	msgSlotTaken           = "выбранное время уже занято, выберите другое окно"
	msgConcurrentBooking   = "это время только что забронировали, обновите расписание и попробуйте снова"
)

type Handler struct {
	useCase RescheduleBookingUseCase
	admin   bool
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// NewAdminHandler перенос из админки: любое бронирование, без лимита прогулок и рабочих часов
func NewAdminHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		admin:   true,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/reschedule, PATCH /api/v1/admin/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var ownerID int64
	if !h.admin {
		userID, ok := middleware.GetUserID(r.Context())
		if !ok {
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Missing user ID")
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}
		ownerID = userID
	}

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(bookingID, ownerID, h.admin)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleBooking.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Access denied: booking_id=%d, user_id=%d", bookingID, ownerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleBooking.ErrCannotReschedule):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Cannot reschedule: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgCannotReschedule)

		case errors.Is(err, rescheduleBooking.ErrWalkLimitReached):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Walk limit reached: booking_id=%d, %v", bookingID, err)
			handlers.RespondConflict(w, msgWalkLimitReached)

		case errors.Is(err, rescheduleBooking.ErrSlotTaken):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Slot taken: booking_id=%d, %v", bookingID, err)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, rescheduleBooking.ErrConcurrentBooking):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Concurrent booking: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgConcurrentBooking)

		case errors.Is(err, rescheduleBooking.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, rescheduleBooking.ErrDateTooFarInFuture):
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, rescheduleBooking.ErrTooLateToBook):
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, rescheduleBooking.ErrOutsideWorkingHours):
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/reschedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /bookings/{id}/reschedule - Failed to reschedule: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/reschedule - Booking rescheduled: booking_id=%d, admin=%t", bookingID, h.admin)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(result.Booking))
}
