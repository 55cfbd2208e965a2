package update_daycare_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// DaycareRepository интерфейс репозитория дневного пребывания
type DaycareRepository interface {
	GetBooking(ctx context.Context, id uuid.UUID) (*domain.DaycareBooking, error)
	FindActiveBooking(ctx context.Context, petID, sessionID uuid.UUID) (*domain.DaycareBooking, error)
	UpdateBooking(ctx context.Context, booking *domain.DaycareBooking) (*domain.DaycareBooking, error)
	GetSession(ctx context.Context, id uuid.UUID) (*domain.DaycareSession, error)
	AdjustCurrentBookings(ctx context.Context, id uuid.UUID, delta int) (*domain.DaycareSession, error)
	GetRoom(ctx context.Context, id uuid.UUID) (*domain.DaycareRoom, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder интерфейс доменных метрик
type MetricsRecorder interface {
	DaycareTransition(from, to string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
