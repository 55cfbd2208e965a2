package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	Create(ctx context.Context, block *domain.StaffAvailabilityBlock) (*domain.StaffAvailabilityBlock, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StaffAvailabilityBlock, error)
	ListByStaff(ctx context.Context, staffID uuid.UUID, from, to time.Time) ([]*domain.StaffAvailabilityBlock, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CatalogRepository интерфейс справочника специалистов
type CatalogRepository interface {
	GetStaff(ctx context.Context, id uuid.UUID) (*domain.StaffMember, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
