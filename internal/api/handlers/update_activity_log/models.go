package update_activity_log

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/activitylogs/models"
)

// UpdateActivityLogRequest HTTP request model
type UpdateActivityLogRequest struct {
	ActivityType *string `json:"activityType,omitempty"`
	Details      *string `json:"details,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateActivityLogRequest) ToServiceRequest(actor domain.Actor, logID uuid.UUID) *models.UpdateRequest {
	return &models.UpdateRequest{
		Actor:        actor,
		ID:           logID,
		ActivityType: r.ActivityType,
		Details:      r.Details,
	}
}
