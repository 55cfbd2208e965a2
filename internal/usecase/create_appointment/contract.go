package create_appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
}

// AvailabilityRepository интерфейс репозитория блоков доступности
type AvailabilityRepository interface {
	// FindCovering получает блок специалиста, полностью покрывающий [start, end)
	FindCovering(ctx context.Context, staffID uuid.UUID, start, end time.Time) (*domain.StaffAvailabilityBlock, error)
}

// CatalogRepository интерфейс справочника услуг и специалистов
type CatalogRepository interface {
	GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	GetStaff(ctx context.Context, id uuid.UUID) (*domain.StaffMember, error)
	IsQualified(ctx context.Context, staffID, serviceID uuid.UUID) (bool, error)
}

// PetRegistryClient интерфейс клиента реестра питомцев
type PetRegistryClient interface {
	GetPet(ctx context.Context, petID uuid.UUID) (*domain.Pet, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Locker интерфейс распределенной блокировки расписания специалиста
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	Unlock(ctx context.Context, key, token string) error
}

// MetricsRecorder интерфейс доменных метрик
type MetricsRecorder interface {
	AppointmentCreated()
	BookingRejected(reason string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
