package find_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена, неактивна или без длительности
	ErrServiceNotFound = fmt.Errorf("%w: find_available_slots: service not found", domain.ErrNotFound)

	// ErrStaffNotFound возвращается, когда специалист не найден или не имеет роли специалиста
	ErrStaffNotFound = fmt.Errorf("%w: find_available_slots: staff member not found", domain.ErrNotFound)

	// ErrStaffNotQualified возвращается, когда специалист не оказывает услугу
	ErrStaffNotQualified = fmt.Errorf("%w: find_available_slots: staff member is not qualified for the service", domain.ErrBadRequest)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: find_available_slots: invalid input data", domain.ErrBadRequest)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: find_available_slots", domain.ErrInternal)
)
