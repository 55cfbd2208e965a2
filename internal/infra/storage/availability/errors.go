package availability

import "errors"

var (
	// ErrBlockNotFound возвращается, когда окно доступности не найдено
	ErrBlockNotFound = errors.New("availability.repository: availability block not found")

	// ErrInvalidInterval возвращается, когда начало окна не раньше его конца
	ErrInvalidInterval = errors.New("availability.repository: start must be before end")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
