package book_daycare_session

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// Request модель запроса на бронирование дневного пребывания
type Request struct {
	Actor     domain.Actor
	SessionID uuid.UUID
	PetID     uuid.UUID
	RoomID    *uuid.UUID
}

// Response модель ответа с созданным бронированием
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
