package get_available_windows

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil || req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

// validateDate проверяет, что дата не в прошлом и не дальше горизонта бронирования
func validateDate(schedule domain.Schedule, date, now time.Time) error {
	if schedule.IsPast(date, now) {
		return ErrInvalidDate
	}
	if schedule.IsBeyondHorizon(date, now) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, schedule.AdvanceBookingDays)
	}
	return nil
}
