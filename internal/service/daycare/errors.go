package daycare

import (
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

var (
	// ErrSessionNotFound возвращается, когда смена не найдена или скрыта от владельца
	ErrSessionNotFound = fmt.Errorf("%w: daycare: daycare session not found", domain.ErrNotFound)

	// ErrSessionDateTaken возвращается, когда смена на эту дату уже существует
	ErrSessionDateTaken = fmt.Errorf("%w: daycare: session for this date already exists", domain.ErrConflict)

	// ErrCapacityBelowBookings возвращается при уменьшении вместимости ниже числа бронирований
	ErrCapacityBelowBookings = fmt.Errorf("%w: daycare: capacity is below current bookings", domain.ErrBadRequest)

	// ErrSessionHasBookings возвращается при удалении смены, у которой есть бронирования
	ErrSessionHasBookings = fmt.Errorf("%w: daycare: session has bookings", domain.ErrBadRequest)

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: daycare: daycare booking not found", domain.ErrNotFound)

	// ErrBookingNotDeletable возвращается, когда владелец удаляет бронирование не в статусе BOOKED
	ErrBookingNotDeletable = fmt.Errorf("%w: daycare: only BOOKED bookings can be deleted by owners", domain.ErrBadRequest)

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = fmt.Errorf("%w: daycare: access denied", domain.ErrForbidden)

	// ErrConcurrentUpdate возвращается при конфликте параллельных транзакций
	ErrConcurrentUpdate = fmt.Errorf("%w: daycare: session was changed concurrently, retry", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: daycare: invalid input data", domain.ErrBadRequest)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: daycare", domain.ErrInternal)
)
