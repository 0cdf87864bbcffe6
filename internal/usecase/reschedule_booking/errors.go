package reschedule_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда владелец пытается перенести чужое бронирование
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotReschedule возвращается для отменённых, завершённых и многодневных бронирований
	ErrCannotReschedule = errors.New("booking cannot be rescheduled")

	// ErrInvalidDate возвращается, когда новая дата в прошлом
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrTooLateToBook возвращается, когда до нового начала меньше минимального времени
	ErrTooLateToBook = errors.New("too late to book this slot")

	// ErrOutsideWorkingHours возвращается, когда новое время выходит за рабочие часы
	ErrOutsideWorkingHours = errors.New("booking is outside working hours")

	// ErrSlotTaken возвращается, когда новое время пересекается с другим бронированием
	ErrSlotTaken = errors.New("slot already taken")

	// ErrWalkLimitReached возвращается, когда на новую дату исчерпан лимит прогулок
	ErrWalkLimitReached = errors.New("walk limit reached for this date")

	// ErrConcurrentBooking возвращается, когда параллельное бронирование выиграло гонку
	ErrConcurrentBooking = errors.New("date was booked concurrently, try again")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
