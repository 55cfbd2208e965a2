package update_daycare_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// Request модель запроса на изменение бронирования
type Request struct {
	Actor     domain.Actor
	BookingID uuid.UUID
	Status    *string
	RoomID    *uuid.UUID
}

// Response модель ответа с измененным бронированием
type Response struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	PetID     uuid.UUID
	OwnerID   uuid.UUID
	RoomID    *uuid.UUID
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
