package update_appointment

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AppointmentID == uuid.Nil {
		return fmt.Errorf("%w: appointmentId is required", ErrInvalidInput)
	}

	if req.Notes == nil && req.Status == nil && req.PetID == nil && req.ServiceID == nil && !req.reschedules() {
		return ErrEmptyUpdate
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.Status != nil {
		if _, err := domain.ParseAppointmentStatus(*req.Status); err != nil {
			return err
		}
	}

	if req.StaffID != nil && *req.StaffID == uuid.Nil {
		return fmt.Errorf("%w: staffId must not be empty", ErrInvalidInput)
	}

	if req.NewDate != nil {
		if _, err := time.Parse(domain.DateFormat, *req.NewDate); err != nil {
			return fmt.Errorf("%w: newAppointmentDate must be YYYY-MM-DD", ErrInvalidInput)
		}
	}

	if req.NewTime != nil {
		if _, err := time.Parse(domain.TimeFormat, *req.NewTime); err != nil {
			return fmt.Errorf("%w: newAppointmentTime must be HH:MM", ErrInvalidInput)
		}
	}

	return nil
}

// validateFieldsForRole проверяет, что роль может менять запрошенные поля
// Владелец может только менять заметки и отменять запись.
func validateFieldsForRole(actor domain.Actor, req *Request) error {
	if actor.IsOwner() {
		if req.reschedules() || req.PetID != nil || req.ServiceID != nil {
			return ErrOwnerFieldForbidden
		}
		return nil
	}

	if req.PetID != nil || req.ServiceID != nil {
		return ErrFieldNotEditable
	}

	return nil
}

// checkAccess проверяет доступ к записи: владелец видит только свои записи
func checkAccess(actor domain.Actor, appointment *domain.Appointment) error {
	switch {
	case actor.IsAdmin(), actor.Role.IsStaff():
		return nil
	case actor.IsOwner() && appointment.OwnerID == actor.ID:
		return nil
	default:
		return ErrAccessDenied
	}
}

// newStartTime собирает новое время начала из даты и времени запроса
// Недостающая часть берется из текущего времени записи в часовом поясе loc.
func newStartTime(current time.Time, newDate, newTime *string, loc *time.Location) (time.Time, error) {
	local := current.In(loc)
	year, month, day := local.Date()
	hour, minute := local.Hour(), local.Minute()

	if newDate != nil {
		d, err := time.Parse(domain.DateFormat, *newDate)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: newAppointmentDate must be YYYY-MM-DD", ErrInvalidInput)
		}
		year, month, day = d.Date()
	}

	if newTime != nil {
		t, err := time.Parse(domain.TimeFormat, *newTime)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: newAppointmentTime must be HH:MM", ErrInvalidInput)
		}
		hour, minute = t.Hour(), t.Minute()
	}

	return time.Date(year, month, day, hour, minute, 0, 0, loc), nil
}
