package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// CatalogRepository интерфейс репозитория услуг и квалификаций
type CatalogRepository interface {
	CreateService(ctx context.Context, service *domain.Service) (*domain.Service, error)
	GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	ListServices(ctx context.Context, onlyActive bool) ([]*domain.Service, error)
	UpdateService(ctx context.Context, service *domain.Service) (*domain.Service, error)
	DeleteService(ctx context.Context, id uuid.UUID) error

	GetStaff(ctx context.Context, id uuid.UUID) (*domain.StaffMember, error)
	GetQualifiedStaff(ctx context.Context, serviceID uuid.UUID) ([]*domain.StaffMember, error)
	AssignQualification(ctx context.Context, staffID, serviceID uuid.UUID) (bool, error)
	RevokeQualification(ctx context.Context, staffID, serviceID uuid.UUID) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
