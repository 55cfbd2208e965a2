package activitylogs

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// ActivityLogRepository интерфейс репозитория журнала активностей
type ActivityLogRepository interface {
	Create(ctx context.Context, log *domain.ActivityLog) (*domain.ActivityLog, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ActivityLog, error)
	List(ctx context.Context, filter domain.ActivityLogFilter) ([]*domain.ActivityLog, error)
	Update(ctx context.Context, log *domain.ActivityLog) (*domain.ActivityLog, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PetRegistry интерфейс реестра питомцев
type PetRegistry interface {
	GetPet(ctx context.Context, petID uuid.UUID) (*domain.Pet, error)
}

// DaycareRepository интерфейс репозитория бронирований дневного пребывания
type DaycareRepository interface {
	GetBooking(ctx context.Context, id uuid.UUID) (*domain.DaycareBooking, error)
}

// AppointmentRepository интерфейс репозитория записей на услуги
type AppointmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
