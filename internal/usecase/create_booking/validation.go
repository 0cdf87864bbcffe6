package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.OwnerID <= 0 {
		return fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.DogName) == "" {
		return fmt.Errorf("%w: dog name is required", ErrInvalidInput)
	}

	if !req.ServiceType.IsValid() {
		return fmt.Errorf("%w: unknown service type %q", ErrInvalidInput, req.ServiceType)
	}

	if !req.BookingType.IsValid() {
		return fmt.Errorf("%w: unknown booking type %q", ErrInvalidInput, req.BookingType)
	}

	// Передержка всегда многодневная, всё остальное - разовые визиты
	if (req.ServiceType == domain.ServiceSitting) != (req.BookingType == domain.BookingMultiDay) {
		return fmt.Errorf("%w: service %q cannot be booked as %q", ErrInvalidInput, req.ServiceType, req.BookingType)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.BookingType == domain.BookingMultiDay {
		return validateSitting(req)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: start and end time are required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
	}

	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}

	return nil
}

func validateSitting(req *Request) error {
	if req.EndDate == nil || req.EndDate.IsZero() {
		return fmt.Errorf("%w: end date is required for a sitting", ErrInvalidInput)
	}

	if domain.DateOnly(*req.EndDate).Before(domain.DateOnly(req.Date)) {
		return fmt.Errorf("%w: end date must not precede start date", ErrInvalidInput)
	}

	days := int(domain.DateOnly(*req.EndDate).Sub(domain.DateOnly(req.Date)).Hours()/24) + 1
	if days > domain.MaxSittingDays {
		return fmt.Errorf("%w: sitting can last at most %d days", ErrInvalidInput, domain.MaxSittingDays)
	}

	if req.Recurrence != nil {
		return fmt.Errorf("%w: sittings cannot recur", ErrInvalidInput)
	}

	if domain.SameDate(req.Date, *req.EndDate) && !req.StartTime.IsZero() && !req.EndTime.IsZero() &&
		!req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: drop-off time must be before pick-up time", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и не дальше горизонта бронирования
func validateDate(schedule domain.Schedule, date, now time.Time, admin bool) error {
	if schedule.IsPast(date, now) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, date.Format(domain.DateFormat))
	}

	if !admin && schedule.IsBeyondHorizon(date, now) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, schedule.AdvanceBookingDays)
	}

	return nil
}

// validateWorkingHours проверяет, что визит целиком в рабочих часах и не раньше min notice
func validateWorkingHours(schedule domain.Schedule, occ occurrence, now time.Time) error {
	envelope := schedule.Envelope(occ.date)
	if !envelope.Contains(occ.rng) {
		return fmt.Errorf("%w: %s-%s on %s, working hours %s-%s", ErrOutsideWorkingHours,
			occ.rng.Start.Format(domain.TimeFormat), occ.rng.End.Format(domain.TimeFormat),
			occ.date.Format(domain.DateFormat), schedule.WorkdayStart, schedule.WorkdayEnd)
	}

	if occ.rng.Start.Before(schedule.EarliestStart(now)) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook,
			int(schedule.MinBookingNotice.Minutes()))
	}

	return nil
}
