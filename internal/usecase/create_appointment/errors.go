package create_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

var (
	// ErrPetNotFound возвращается, когда питомец не найден
	ErrPetNotFound = fmt.Errorf("%w: create_appointment: pet not found", domain.ErrNotFound)

	// ErrPetNotOwned возвращается, когда питомец принадлежит другому владельцу
	ErrPetNotOwned = fmt.Errorf("%w: create_appointment: pet does not belong to the user", domain.ErrForbidden)

	// ErrServiceNotFound возвращается, когда услуга не найдена или неактивна
	ErrServiceNotFound = fmt.Errorf("%w: create_appointment: active service not found", domain.ErrNotFound)

	// ErrServiceWithoutDuration возвращается, когда у услуги не задана длительность
	ErrServiceWithoutDuration = fmt.Errorf("%w: create_appointment: service has no duration configured", domain.ErrBadRequest)

	// ErrStaffNotFound возвращается, когда специалист не найден или не имеет роли специалиста
	ErrStaffNotFound = fmt.Errorf("%w: create_appointment: staff member not found", domain.ErrNotFound)

	// ErrStaffNotQualified возвращается, когда специалист не оказывает услугу
	ErrStaffNotQualified = fmt.Errorf("%w: create_appointment: staff member is not qualified for the service", domain.ErrBadRequest)

	// ErrStaffNotAvailable возвращается, когда ни один блок доступности не покрывает интервал записи
	ErrStaffNotAvailable = fmt.Errorf("%w: create_appointment: staff member is not available at the requested time", domain.ErrConflict)

	// ErrDoubleBooking возвращается, когда интервал пересекается с активной записью специалиста
	ErrDoubleBooking = fmt.Errorf("%w: create_appointment: staff member already has an appointment at this time", domain.ErrConflict)

	// ErrSlotTaken возвращается, когда слот заняли параллельно; клиенту следует перезапросить слоты
	ErrSlotTaken = fmt.Errorf("%w: create_appointment: slot was taken concurrently, re-query available slots", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: create_appointment: invalid input data", domain.ErrBadRequest)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: create_appointment", domain.ErrInternal)
)

// Причины отказа для метрики booking_rejections_total
const (
	reasonNotAvailable  = "not_available"
	reasonDoubleBooking = "double_booking"
	reasonConcurrent    = "concurrent"
)
