package create_activity_log

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/activitylogs/models"
)

// CreateActivityLogRequest HTTP request model
type CreateActivityLogRequest struct {
	PetID            uuid.UUID  `json:"petId"`
	ActivityType     string     `json:"activityType"`
	Details          string     `json:"details"`
	DaycareBookingID *uuid.UUID `json:"daycareBookingId,omitempty"`
	AppointmentID    *uuid.UUID `json:"appointmentId,omitempty"`
	Timestamp        *time.Time `json:"timestamp,omitempty"` // RFC 3339
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateActivityLogRequest) ToServiceRequest(actor domain.Actor) *models.CreateRequest {
	return &models.CreateRequest{
		Actor:            actor,
		PetID:            r.PetID,
		ActivityType:     r.ActivityType,
		Details:          r.Details,
		DaycareBookingID: r.DaycareBookingID,
		AppointmentID:    r.AppointmentID,
		Timestamp:        r.Timestamp,
	}
}
