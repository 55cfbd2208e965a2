package book_daycare_session

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// DaycareRepository интерфейс репозитория дневного пребывания
type DaycareRepository interface {
	GetSession(ctx context.Context, id uuid.UUID) (*domain.DaycareSession, error)
	FindActiveBooking(ctx context.Context, petID, sessionID uuid.UUID) (*domain.DaycareBooking, error)
	CreateBooking(ctx context.Context, booking *domain.DaycareBooking) (*domain.DaycareBooking, error)
	AdjustCurrentBookings(ctx context.Context, id uuid.UUID, delta int) (*domain.DaycareSession, error)
	GetRoom(ctx context.Context, id uuid.UUID) (*domain.DaycareRoom, error)
}

// PetRegistryClient интерфейс клиента реестра питомцев
type PetRegistryClient interface {
	GetPet(ctx context.Context, petID uuid.UUID) (*domain.Pet, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder интерфейс доменных метрик
type MetricsRecorder interface {
	BookingRejected(reason string)
	DaycareTransition(from, to string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
