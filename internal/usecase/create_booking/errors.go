package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidRecurrence возвращается при некорректном или неограниченном RRULE
	ErrInvalidRecurrence = errors.New("invalid recurrence rule")

	// ErrInvalidDate возвращается, когда дата бронирования в прошлом
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает ограничение advanceBookingDays
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrTooLateToBook возвращается, когда до начала меньше минимального времени
	ErrTooLateToBook = errors.New("too late to book this slot")

	// ErrOutsideWorkingHours возвращается, когда визит выходит за рабочие часы
	ErrOutsideWorkingHours = errors.New("booking is outside working hours")

	// ErrSlotTaken возвращается, когда время пересекается с другим бронированием
	ErrSlotTaken = errors.New("slot already taken")

	// ErrWalkLimitReached возвращается, когда на дату исчерпан лимит прогулок во время передержки
	ErrWalkLimitReached = errors.New("walk limit reached for this date")

	// ErrSittingOverlap возвращается, когда передержка пересекается с другой передержкой
	ErrSittingOverlap = errors.New("sitting overlaps another sitting")

	// ErrConcurrentBooking возвращается, когда параллельное бронирование на ту же дату выиграло гонку
	ErrConcurrentBooking = errors.New("date was booked concurrently, try again")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
