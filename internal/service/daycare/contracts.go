package daycare

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// DaycareRepository интерфейс репозитория дневного пребывания
type DaycareRepository interface {
	CreateSession(ctx context.Context, session *domain.DaycareSession) (*domain.DaycareSession, error)
	GetSession(ctx context.Context, id uuid.UUID) (*domain.DaycareSession, error)
	ListSessions(ctx context.Context, onlyBookable bool) ([]*domain.DaycareSession, error)
	UpdateSession(ctx context.Context, session *domain.DaycareSession) (*domain.DaycareSession, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
	CountBookingsBySession(ctx context.Context, sessionID uuid.UUID) (int, error)
	AdjustCurrentBookings(ctx context.Context, id uuid.UUID, delta int) (*domain.DaycareSession, error)

	GetBooking(ctx context.Context, id uuid.UUID) (*domain.DaycareBooking, error)
	ListBookings(ctx context.Context, scope domain.ScopedQuery) ([]*domain.DaycareBooking, error)
	DeleteBooking(ctx context.Context, id uuid.UUID) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
