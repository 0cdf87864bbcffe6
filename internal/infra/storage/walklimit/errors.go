package walklimit

import "errors"

var (
	// ErrOverrideNotFound возвращается, когда на дату нет строки переопределения
	ErrOverrideNotFound = errors.New("walklimit.repository: override not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("walklimit.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("walklimit.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("walklimit.repository: failed to scan row")
)
