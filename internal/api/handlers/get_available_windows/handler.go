package get_available_windows

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-WalkBookingService/internal/api/handlers"
	getAvailableWindows "github.com/m04kA/SMC-WalkBookingService/internal/usecase/get_available_windows"
)

const (
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgPastDate        = "нельзя посмотреть свободное время на прошедшую дату"
	msgDateTooFar      = "дата слишком далеко в будущем"
	msgUpstreamFailure = "не удалось загрузить расписание, попробуйте ещё раз через минуту"
)

type Handler struct {
	useCase GetAvailableWindowsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableWindowsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date, err := handlers.ParseDate(r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableWindows.Request{Date: date})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableWindows.ErrInvalidDate):
			h.logger.Warn("GET /availability - Past date: %v", err)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, getAvailableWindows.ErrDateTooFarInFuture):
			h.logger.Warn("GET /availability - Date too far: %v", err)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableWindows.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			// Календарь или база недоступны: окна не показываем, чтобы не предложить занятое время
			h.logger.Error("GET /availability - Failed to compute availability: %v", err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgUpstreamFailure)
		}
		return
	}

	h.logger.Info("GET /availability - %d window(s) for %s", len(result.Windows), result.Date.Format("2006-01-02"))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
