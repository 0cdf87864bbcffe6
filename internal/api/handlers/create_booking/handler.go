package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WalkBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-WalkBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-WalkBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateTime     = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgMissingOwnerID      = "укажите ownerId владельца собаки"
	msgInvalidInput        = "некорректные данные бронирования"
	msgInvalidRecurrence   = "некорректное правило повторения: нужен FREQ и COUNT или UNTIL, не больше 52 визитов"
	msgInvalidBookingDate  = "нельзя забронировать прошедшую дату"
	msgDateTooFar          = "дата бронирования слишком далеко в будущем"
	msgTooLateToBook       = "слишком поздно для бронирования на это время"
	msgOutsideWorkingHours = "выбранное время вне рабочих часов"
	msgWalkLimitReached    = "на эту дату прогулки закончились: идёт передержка и дневной лимит прогулок исчерпан"
	msgSlotTaken           = "выбранное время уже занято, выберите другое окно"
	msgSittingOverlap      = "на эти даты уже есть передержка"
	msgConcurrentBooking   = "это время только что забронировали, обновите расписание и попробуйте снова"
)

type Handler struct {
	useCase CreateBookingUseCase
	admin   bool
	logger  Logger
}

// NewHandler публичное создание бронирования: владелец из X-User-ID
func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// NewAdminHandler создание из админки: владелец из тела, лимит прогулок и рабочие часы не проверяются
func NewAdminHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		admin:   true,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings, POST /api/v1/admin/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	ownerID := req.OwnerID
	if !h.admin {
		userID, ok := middleware.GetUserID(r.Context())
		if !ok {
			h.logger.Warn("POST /bookings - Missing user ID")
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}
		ownerID = userID
	} else if ownerID <= 0 {
		h.logger.Warn("POST /admin/bookings - Missing owner ID")
		handlers.RespondBadRequest(w, msgMissingOwnerID)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(ownerID, h.admin)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrWalkLimitReached):
			h.logger.Warn("POST /bookings - Walk limit reached: owner_id=%d, %v", ownerID, err)
			handlers.RespondConflict(w, msgWalkLimitReached)

		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: owner_id=%d, %v", ownerID, err)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createBooking.ErrSittingOverlap):
			h.logger.Warn("POST /bookings - Sitting overlap: owner_id=%d, %v", ownerID, err)
			handlers.RespondConflict(w, msgSittingOverlap)

		case errors.Is(err, createBooking.ErrConcurrentBooking):
			h.logger.Warn("POST /bookings - Concurrent booking: owner_id=%d", ownerID)
			handlers.RespondConflict(w, msgConcurrentBooking)

		case errors.Is(err, createBooking.ErrInvalidRecurrence):
			h.logger.Warn("POST /bookings - Invalid recurrence: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRecurrence)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: %v", err)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrTooLateToBook):
			h.logger.Warn("POST /bookings - Too late to book: %v", err)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createBooking.ErrOutsideWorkingHours):
			h.logger.Warn("POST /bookings - Outside working hours: %v", err)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Created %d booking(s): owner_id=%d, admin=%t", len(result.Bookings), ownerID, h.admin)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
