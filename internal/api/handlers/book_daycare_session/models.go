package book_daycare_session

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	bookDaycareSession "github.com/m04kA/SMC-PetCareService/internal/usecase/book_daycare_session"
)

// BookDaycareRequest HTTP request model
type BookDaycareRequest struct {
	SessionID uuid.UUID  `json:"daycareSessionId"`
	PetID     uuid.UUID  `json:"petId"`
	RoomID    *uuid.UUID `json:"roomId,omitempty"`
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
func (r *BookDaycareRequest) ToUseCaseRequest(actor domain.Actor) *bookDaycareSession.Request {
	return &bookDaycareSession.Request{
		Actor:     actor,
		SessionID: r.SessionID,
		PetID:     r.PetID,
		RoomID:    r.RoomID,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookDaycareSession.Response) *BookingResponse {
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
