package update_appointment

import (
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = fmt.Errorf("%w: update_appointment: appointment not found", domain.ErrNotFound)

	// ErrAccessDenied возвращается, когда владелец пытается изменить чужую запись
	ErrAccessDenied = fmt.Errorf("%w: update_appointment: no access to the appointment", domain.ErrForbidden)

	// ErrOwnerFieldForbidden возвращается, когда владелец пытается перенести запись или сменить специалиста, питомца или услугу
	ErrOwnerFieldForbidden = fmt.Errorf("%w: update_appointment: owners may only update notes and cancel", domain.ErrForbidden)

	// ErrFieldNotEditable возвращается при попытке сменить питомца или услугу записи
	ErrFieldNotEditable = fmt.Errorf("%w: update_appointment: pet and service of an appointment cannot be changed", domain.ErrBadRequest)

	// ErrEmptyUpdate возвращается, когда в запросе нет изменяемых полей
	ErrEmptyUpdate = fmt.Errorf("%w: update_appointment: nothing to update", domain.ErrBadRequest)

	// ErrServiceNotFound возвращается при переносе, когда услуга записи удалена или неактивна
	ErrServiceNotFound = fmt.Errorf("%w: update_appointment: active service not found", domain.ErrNotFound)

	// ErrServiceWithoutDuration возвращается при переносе, когда у услуги не задана длительность
	ErrServiceWithoutDuration = fmt.Errorf("%w: update_appointment: service has no duration configured", domain.ErrBadRequest)

	// ErrStaffNotFound возвращается, когда новый специалист не найден или не имеет роли специалиста
	ErrStaffNotFound = fmt.Errorf("%w: update_appointment: staff member not found", domain.ErrNotFound)

	// ErrStaffNotQualified возвращается, когда новый специалист не оказывает услугу записи
	ErrStaffNotQualified = fmt.Errorf("%w: update_appointment: staff member is not qualified for the service", domain.ErrBadRequest)

	// ErrStaffNotAvailable возвращается, когда новый интервал не покрыт блоком доступности
	ErrStaffNotAvailable = fmt.Errorf("%w: update_appointment: staff member is not available at the requested time", domain.ErrConflict)

	// ErrDoubleBooking возвращается, когда новый интервал пересекается с другой активной записью
	ErrDoubleBooking = fmt.Errorf("%w: update_appointment: staff member already has an appointment at this time", domain.ErrConflict)

	// ErrSlotTaken возвращается, когда слот заняли параллельно
	ErrSlotTaken = fmt.Errorf("%w: update_appointment: slot was taken concurrently, re-query available slots", domain.ErrConflict)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("%w: update_appointment: invalid input data", domain.ErrBadRequest)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = fmt.Errorf("%w: update_appointment", domain.ErrInternal)
)

// Причины отказа для метрики booking_rejections_total
const (
	reasonNotAvailable  = "not_available"
	reasonDoubleBooking = "double_booking"
	reasonConcurrent    = "concurrent"
)
