package update_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// Request модель запроса на изменение записи
// Все поля кроме Actor и AppointmentID опциональны; nil означает "не менять".
type Request struct {
	Actor         domain.Actor
	AppointmentID uuid.UUID
	Notes         *string
	Status        *string
	StaffID       *uuid.UUID
	PetID         *uuid.UUID
	ServiceID     *uuid.UUID
	NewDate       *string // YYYY-MM-DD
	NewTime       *string // HH:MM
}

// reschedules сообщает, меняется ли время или специалист записи
func (r *Request) reschedules() bool {
	return r.StaffID != nil || r.NewDate != nil || r.NewTime != nil
}

// Response модель ответа с измененной записью
type Response struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	PetID           uuid.UUID
	ServiceID       uuid.UUID
	StaffID         uuid.UUID
	DateTime        time.Time
	EndTime         time.Time
	DurationMinutes int
	Status          string
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
