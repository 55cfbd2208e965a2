package update_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	updateAppointment "github.com/m04kA/SMC-PetCareService/internal/usecase/update_appointment"
)

// UpdateAppointmentRequest HTTP request model
// Отсутствующее поле не изменяется
type UpdateAppointmentRequest struct {
	Notes              *string    `json:"notes,omitempty"`
	Status             *string    `json:"status,omitempty"`
	StaffID            *uuid.UUID `json:"staffId,omitempty"`
	PetID              *uuid.UUID `json:"petId,omitempty"`
	ServiceID          *uuid.UUID `json:"serviceId,omitempty"`
	NewAppointmentDate *string    `json:"newAppointmentDate,omitempty"` // "2025-10-15"
	NewAppointmentTime *string    `json:"newAppointmentTime,omitempty"` // "14:30"
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              uuid.UUID `json:"id"`
	OwnerID         uuid.UUID `json:"ownerId"`
	PetID           uuid.UUID `json:"petId"`
	ServiceID       uuid.UUID `json:"serviceId"`
	StaffID         uuid.UUID `json:"staffId"`
	DateTime        string    `json:"dateTime"`
	EndTime         string    `json:"endTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       string    `json:"createdAt"`
	UpdatedAt       string    `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateAppointmentRequest) ToUseCaseRequest(actor domain.Actor, appointmentID uuid.UUID) *updateAppointment.Request {
	return &updateAppointment.Request{
		Actor:         actor,
		AppointmentID: appointmentID,
		Notes:         r.Notes,
		Status:        r.Status,
		StaffID:       r.StaffID,
		PetID:         r.PetID,
		ServiceID:     r.ServiceID,
		NewDate:       r.NewAppointmentDate,
		NewTime:       r.NewAppointmentTime,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		OwnerID:         resp.OwnerID,
		PetID:           resp.PetID,
		ServiceID:       resp.ServiceID,
		StaffID:         resp.StaffID,
		DateTime:        resp.DateTime.Format(time.RFC3339),
		EndTime:         resp.EndTime.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
