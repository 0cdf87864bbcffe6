package admission

import "errors"

var (
	// ErrLookupFailed возвращается, если не удалось прочитать состояние даты.
	// В этом случае бронирование не допускается
	ErrLookupFailed = errors.New("admission: state lookup failed")

	// ErrInvalidRequest возвращается при некорректном запросе на проверку
	ErrInvalidRequest = errors.New("admission: invalid request")
)
