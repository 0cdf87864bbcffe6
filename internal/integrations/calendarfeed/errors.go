package calendarfeed

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("calendarfeed client: internal error")

	// ErrUnavailable возвращается, когда фид не ответил или ответил не 200
	ErrUnavailable = errors.New("calendarfeed client: feed unavailable")

	// ErrInvalidFeed возвращается, когда ответ не является iCalendar
	ErrInvalidFeed = errors.New("calendarfeed client: invalid iCalendar data")
)
