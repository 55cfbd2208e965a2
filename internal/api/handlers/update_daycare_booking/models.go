package update_daycare_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	updateDaycareBooking "github.com/m04kA/SMC-PetCareService/internal/usecase/update_daycare_booking"
)

// UpdateBookingRequest HTTP request model
type UpdateBookingRequest struct {
	Status *string    `json:"status,omitempty"`
	RoomID *uuid.UUID `json:"roomId,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID        uuid.UUID  `json:"id"`
	SessionID uuid.UUID  `json:"daycareSessionId"`
	PetID     uuid.UUID  `json:"petId"`
	OwnerID   uuid.UUID  `json:"ownerId"`
	RoomID    *uuid.UUID `json:"roomId,omitempty"`
	Status    string     `json:"status"`
	CreatedAt string     `json:"createdAt"`
	UpdatedAt string     `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(actor domain.Actor, bookingID uuid.UUID) *updateDaycareBooking.Request {
	return &updateDaycareBooking.Request{
		Actor:     actor,
		BookingID: bookingID,
		Status:    r.Status,
		RoomID:    r.RoomID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateDaycareBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:        resp.ID,
		SessionID: resp.SessionID,
		PetID:     resp.PetID,
		OwnerID:   resp.OwnerID,
		RoomID:    resp.RoomID,
		Status:    resp.Status,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
