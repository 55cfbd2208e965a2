package availability

import (
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

var (
	// ErrStaffNotFound возвращается, когда специалист не найден
	ErrStaffNotFound = fmt.Errorf("%w: availability: staff member not found", domain.ErrNotFound)

	// ErrNotStaff возвращается, когда пользователь не может оказывать услуги
	ErrNotStaff = fmt.Errorf("%w: availability: user cannot perform services", domain.ErrBadRequest)

	// ErrBlockNotFound возвращается, когда окно доступности не найдено
	ErrBlockNotFound = fmt.Errorf("%w: availability: availability block not found", domain.ErrNotFound)

	// ErrBlockOverlaps возвращается, когда новое окно пересекается с существующим окном специалиста
	ErrBlockOverlaps = fmt.Errorf("%w: availability: block overlaps an existing block", domain.ErrConflict)

	// ErrAccessDenied возвращается, когда пользователь не администратор и не сам специалист
	ErrAccessDenied = fmt.Errorf("%w: availability: access denied", domain.ErrForbidden)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: availability: invalid input data", domain.ErrBadRequest)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: availability", domain.ErrInternal)
)
