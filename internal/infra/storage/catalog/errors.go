package catalog

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("catalog.repository: service not found")

	// ErrServiceNameTaken возвращается, когда услуга с таким названием уже существует
	ErrServiceNameTaken = errors.New("catalog.repository: service name already exists")

	// ErrServiceInUse возвращается при удалении услуги, на которую ссылаются записи
	ErrServiceInUse = errors.New("catalog.repository: service is referenced by appointments")

	// ErrQualificationNotFound возвращается, когда у специалиста нет квалификации для услуги
	ErrQualificationNotFound = errors.New("catalog.repository: qualification not found")

	// ErrReferenceNotFound возвращается, когда специалист или услуга квалификации не существуют
	ErrReferenceNotFound = errors.New("catalog.repository: staff member or service does not exist")

	// ErrStaffNotFound возвращается, когда пользователь не найден
	ErrStaffNotFound = errors.New("catalog.repository: staff member not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("catalog.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("catalog.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("catalog.repository: failed to scan row")
)
