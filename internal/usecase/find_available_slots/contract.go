package find_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// CatalogRepository интерфейс справочника услуг и специалистов
type CatalogRepository interface {
	GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	GetStaff(ctx context.Context, id uuid.UUID) (*domain.StaffMember, error)
	IsQualified(ctx context.Context, staffID, serviceID uuid.UUID) (bool, error)
	GetQualifiedStaff(ctx context.Context, serviceID uuid.UUID) ([]*domain.StaffMember, error)
}

// AvailabilityRepository интерфейс репозитория блоков доступности
type AvailabilityRepository interface {
	// ListByStaff получает блоки специалиста, пересекающиеся с [from, to)
	ListByStaff(ctx context.Context, staffID uuid.UUID, from, to time.Time) ([]*domain.StaffAvailabilityBlock, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error)
}

// SlotConfigRepository интерфейс репозитория конфигурации шага слотов
type SlotConfigRepository interface {
	// GetWithHierarchy получает конфигурацию услуги, а при ее отсутствии глобальную
	GetWithHierarchy(ctx context.Context, serviceID uuid.UUID) (*domain.SlotConfig, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
