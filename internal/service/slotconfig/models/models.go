package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// Уровень, с которого взят шаг слотов
const (
	SourceService = "service"
	SourceGlobal  = "global"
	SourceDefault = "default"
)

// Request модели

// UpsertConfigRequest запрос на установку шага слотов
// ServiceID == nil - глобальная конфигурация для всех услуг
type UpsertConfigRequest struct {
	Actor       domain.Actor
	ServiceID   *uuid.UUID
	StepMinutes int
}

// Response модели

// ConfigResponse ответ с действующим шагом слотов
type ConfigResponse struct {
	ID          *int64     `json:"id,omitempty"` // nil для значения по умолчанию
	ServiceID   *uuid.UUID `json:"serviceId,omitempty"`
	StepMinutes int        `json:"stepMinutes"`
	Source      string     `json:"source"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.SlotConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	source := SourceService
	if c.IsGlobal() {
		source = SourceGlobal
	}

	id := c.ID
	updatedAt := c.UpdatedAt
	return &ConfigResponse{
		ID:          &id,
		ServiceID:   c.ServiceID,
		StepMinutes: c.StepMinutes,
		Source:      source,
		UpdatedAt:   &updatedAt,
	}
}

// DefaultConfig ответ для услуги без сохраненной конфигурации
func DefaultConfig(stepMinutes int) *ConfigResponse {
	return &ConfigResponse{
		StepMinutes: stepMinutes,
		Source:      SourceDefault,
	}
}
