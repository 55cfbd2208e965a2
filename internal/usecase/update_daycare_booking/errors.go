package update_daycare_booking

import (
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: update_daycare_booking: daycare booking not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда владелец изменяет чужое бронирование
	ErrAccessDenied = fmt.Errorf("%w: update_daycare_booking: no access to the booking", domain.ErrForbidden)

	// ErrOwnerMayOnlyCancel возвращается, когда владелец пытается сделать что-то кроме отмены
	ErrOwnerMayOnlyCancel = fmt.Errorf("%w: update_daycare_booking: owners may only cancel bookings", domain.ErrForbidden)

	// ErrOwnerCancelNotAllowed возвращается, когда владелец отменяет бронирование не в статусе BOOKED
	ErrOwnerCancelNotAllowed = fmt.Errorf("%w: update_daycare_booking: only BOOKED bookings can be cancelled by owners", domain.ErrBadRequest)

	// ErrSessionUnavailable возвращается, когда для восстановления бронирования нет мест или смена закрыта
	ErrSessionUnavailable = fmt.Errorf("%w: update_daycare_booking: daycare session is full or closed", domain.ErrBadRequest)

	// ErrAlreadyBooked возвращается, когда у питомца уже есть другое активное бронирование на смену
	ErrAlreadyBooked = fmt.Errorf("%w: update_daycare_booking: pet is already booked for this session", domain.ErrConflict)

	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = fmt.Errorf("%w: update_daycare_booking: daycare room not found", domain.ErrNotFound)

	// ErrEmptyUpdate возвращается, когда в запросе нет изменяемых полей
	ErrEmptyUpdate = fmt.Errorf("%w: update_daycare_booking: nothing to update", domain.ErrBadRequest)

	// ErrConcurrentUpdate возвращается при конфликте параллельных транзакций
	ErrConcurrentUpdate = fmt.Errorf("%w: update_daycare_booking: booking was changed concurrently, retry", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: update_daycare_booking: invalid input data", domain.ErrBadRequest)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: update_daycare_booking", domain.ErrInternal)
)
