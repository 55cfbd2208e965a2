package create_availability_block

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/availability/models"
)

// CreateBlockRequest HTTP request model
type CreateBlockRequest struct {
	StartTime time.Time `json:"startTime"` // RFC3339
	EndTime   time.Time `json:"endTime"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateBlockRequest) ToServiceRequest(actor domain.Actor, staffID uuid.UUID) *models.CreateBlockRequest {
	return &models.CreateBlockRequest{
		Actor:     actor,
		StaffID:   staffID,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}
