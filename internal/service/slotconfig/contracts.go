package slotconfig

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// SlotConfigRepository интерфейс репозитория конфигурации шага слотов
type SlotConfigRepository interface {
	Create(ctx context.Context, config *domain.SlotConfig) (*domain.SlotConfig, error)
	GetByService(ctx context.Context, serviceID *uuid.UUID) (*domain.SlotConfig, error)
	GetWithHierarchy(ctx context.Context, serviceID uuid.UUID) (*domain.SlotConfig, error)
	Update(ctx context.Context, config *domain.SlotConfig) (*domain.SlotConfig, error)
}

// CatalogRepository интерфейс справочника услуг
type CatalogRepository interface {
	GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
