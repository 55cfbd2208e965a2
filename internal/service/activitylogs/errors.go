package activitylogs

import (
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

var (
	// ErrActivityLogNotFound возвращается, когда запись журнала не найдена
	ErrActivityLogNotFound = fmt.Errorf("%w: activitylogs: activity log not found", domain.ErrNotFound)

	// ErrPetNotFound возвращается, когда питомец не найден в реестре
	ErrPetNotFound = fmt.Errorf("%w: activitylogs: pet not found", domain.ErrNotFound)

	// ErrBookingNotFound возвращается, когда связанное бронирование не найдено
	ErrBookingNotFound = fmt.Errorf("%w: activitylogs: daycare booking not found", domain.ErrNotFound)

	// ErrAppointmentNotFound возвращается, когда связанная запись на услугу не найдена
	ErrAppointmentNotFound = fmt.Errorf("%w: activitylogs: appointment not found", domain.ErrNotFound)

	// ErrLinkMismatch возвращается, когда бронирование или запись относятся к другому питомцу
	ErrLinkMismatch = fmt.Errorf("%w: activitylogs: linked booking or appointment belongs to another pet", domain.ErrBadRequest)

	// ErrAccessDenied возвращается, когда у пользователя нет прав на запись журнала
	ErrAccessDenied = fmt.Errorf("%w: activitylogs: access denied", domain.ErrForbidden)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: activitylogs: invalid input data", domain.ErrBadRequest)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = fmt.Errorf("%w: activitylogs", domain.ErrInternal)
)
