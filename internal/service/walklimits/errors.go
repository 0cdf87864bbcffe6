package walklimits

import "errors"

var (
	// ErrOverrideNotFound возвращается при удалении отсутствующего переопределения
	ErrOverrideNotFound = errors.New("walk limit override not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
