package activitylog

import "errors"

var (
	// ErrActivityLogNotFound возвращается, когда запись журнала не найдена
	ErrActivityLogNotFound = errors.New("activitylog.repository: activity log not found")

	// ErrReferenceNotFound возвращается, когда специалист, владелец, бронирование или запись не существуют
	ErrReferenceNotFound = errors.New("activitylog.repository: referenced row not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("activitylog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("activitylog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("activitylog.repository: failed to scan row")
)
