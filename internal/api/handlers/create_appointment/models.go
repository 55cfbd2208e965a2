package create_appointment

import (
	"time"

	"github.com/google/uuid"

	createAppointment "github.com/m04kA/SMC-PetCareService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	PetID     uuid.UUID `json:"petId"`
	ServiceID uuid.UUID `json:"serviceId"`
	StaffID   uuid.UUID `json:"staffId"`
	DateTime  string    `json:"dateTime"` // "2025-07-15T14:30:00Z"
	Notes     *string   `json:"notes,omitempty"`
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
func (r *CreateAppointmentRequest) ToUseCaseRequest(ownerID uuid.UUID) (*createAppointment.Request, error) {
	start, err := time.Parse(time.RFC3339, r.DateTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		OwnerID:   ownerID,
		PetID:     r.PetID,
		ServiceID: r.ServiceID,
		StaffID:   r.StaffID,
		StartTime: start,
		Notes:     r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
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
