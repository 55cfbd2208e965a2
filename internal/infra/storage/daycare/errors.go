package daycare

import "errors"

var (
	// ErrSessionNotFound возвращается, когда смена дневного пребывания не найдена
	ErrSessionNotFound = errors.New("daycare.repository: session not found")

	// ErrSessionDateTaken возвращается, когда смена на эту дату уже существует
	ErrSessionDateTaken = errors.New("daycare.repository: session for this date already exists")

	// ErrCapacityExceeded возвращается, когда изменение счетчика вышло бы за границы [0, total_capacity]
	ErrCapacityExceeded = errors.New("daycare.repository: session capacity exceeded")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("daycare.repository: booking not found")

	// ErrPetAlreadyBooked возвращается, когда у питомца уже есть активное бронирование на смену
	ErrPetAlreadyBooked = errors.New("daycare.repository: pet already has an active booking for this session")

	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("daycare.repository: room not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("daycare.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("daycare.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("daycare.repository: failed to scan row")
)
