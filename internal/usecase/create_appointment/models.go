package create_appointment

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на создание записи
type Request struct {
	OwnerID   uuid.UUID // ID владельца питомца (текущий пользователь)
	PetID     uuid.UUID // ID питомца
	ServiceID uuid.UUID // ID услуги
	StaffID   uuid.UUID // ID специалиста
	StartTime time.Time // Время начала
	Notes     *string   // Заметки (опционально)
}

// Response модель ответа с созданной записью
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
