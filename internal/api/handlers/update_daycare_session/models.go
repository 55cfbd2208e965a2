package update_daycare_session

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/daycare/models"
)

// UpdateSessionRequest HTTP request model
type UpdateSessionRequest struct {
	Date          *string  `json:"date,omitempty"` // "2025-10-15"
	TotalCapacity *int     `json:"totalCapacity,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	Status        *string  `json:"status,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateSessionRequest) ToServiceRequest(actor domain.Actor, sessionID uuid.UUID) (*models.UpdateSessionRequest, error) {
	req := &models.UpdateSessionRequest{
		Actor:         actor,
		SessionID:     sessionID,
		TotalCapacity: r.TotalCapacity,
		Price:         r.Price,
		Status:        r.Status,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}

	return req, nil
}
