package appointments

import (
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("%w: appointments: appointment not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа к записи
	ErrAccessDenied = fmt.Errorf("%w: appointments: access denied", domain.ErrForbidden)

	// ErrCannotCancel возвращается, когда запись уже завершена и не может быть отменена
	ErrCannotCancel = fmt.Errorf("%w: appointments: appointment cannot be cancelled", domain.ErrBadRequest)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: appointments: invalid input data", domain.ErrBadRequest)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: appointments", domain.ErrInternal)
)
