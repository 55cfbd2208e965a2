package find_available_slots

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	ServiceID uuid.UUID  // ID услуги
	Date      time.Time  // Дата (время игнорируется)
	StaffID   *uuid.UUID // Конкретный специалист (опционально)
}

// Response модель ответа со списком свободных слотов
type Response struct {
	Date      time.Time // Начало запрошенного дня
	ServiceID uuid.UUID // ID услуги
	Slots     []Slot    // Слоты по возрастанию времени начала
}

// Slot свободное время начала у конкретного специалиста
type Slot struct {
	StartTime time.Time
	EndTime   time.Time
	StaffID   uuid.UUID
	StaffName string
}
