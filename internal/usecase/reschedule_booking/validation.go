package reschedule_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if !req.Admin && req.OwnerID <= 0 {
		return fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: start and end time are required", ErrInvalidInput)
	}

	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}

	return nil
}

// validateSchedule проверяет дату, рабочие часы и минимальное время до визита.
// Для админа проверяется только то, что дата не в прошлом
func validateSchedule(schedule domain.Schedule, date time.Time, rng domain.TimeRange, now time.Time, admin bool) error {
	if schedule.IsPast(date, now) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, date.Format(domain.DateFormat))
	}

	if admin {
		return nil
	}

	if schedule.IsBeyondHorizon(date, now) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, schedule.AdvanceBookingDays)
	}

	if !schedule.Envelope(date).Contains(rng) {
		return fmt.Errorf("%w: %s-%s, working hours %s-%s", ErrOutsideWorkingHours,
			rng.Start.Format(domain.TimeFormat), rng.End.Format(domain.TimeFormat),
			schedule.WorkdayStart, schedule.WorkdayEnd)
	}

	if rng.Start.Before(schedule.EarliestStart(now)) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook,
			int(schedule.MinBookingNotice.Minutes()))
	}

	return nil
}
