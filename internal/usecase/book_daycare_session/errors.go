package book_daycare_session

import (
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

var (
	// ErrRoleNotAllowed возвращается, когда бронирует не владелец и не администратор
	ErrRoleNotAllowed = fmt.Errorf("%w: book_daycare_session: only owners and admins may book daycare", domain.ErrForbidden)

	// ErrPetNotFound возвращается, когда питомец не найден
	ErrPetNotFound = fmt.Errorf("%w: book_daycare_session: pet not found", domain.ErrNotFound)

	// ErrPetNotOwned возвращается, когда владелец бронирует чужого питомца
	ErrPetNotOwned = fmt.Errorf("%w: book_daycare_session: pet does not belong to the user", domain.ErrForbidden)

	// ErrSessionNotFound возвращается, когда смена не найдена
	ErrSessionNotFound = fmt.Errorf("%w: book_daycare_session: daycare session not found", domain.ErrNotFound)

	// ErrSessionUnavailable возвращается, когда смена закрыта или заполнена
	ErrSessionUnavailable = fmt.Errorf("%w: book_daycare_session: daycare session is full or closed", domain.ErrBadRequest)

	// ErrAlreadyBooked возвращается, когда у питомца уже есть активное бронирование на смену
	ErrAlreadyBooked = fmt.Errorf("%w: book_daycare_session: pet is already booked for this session", domain.ErrConflict)

	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = fmt.Errorf("%w: book_daycare_session: daycare room not found", domain.ErrNotFound)

	// ErrConcurrentUpdate возвращается при конфликте параллельных транзакций
	ErrConcurrentUpdate = fmt.Errorf("%w: book_daycare_session: session was changed concurrently, retry", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: book_daycare_session: invalid input data", domain.ErrBadRequest)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: book_daycare_session", domain.ErrInternal)
)

const reasonSessionFull = "session_full"
