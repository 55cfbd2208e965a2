package create_daycare_session

import (
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/daycare/models"
)

// CreateSessionRequest HTTP request model
type CreateSessionRequest struct {
	Date          string  `json:"date"` // "2025-10-15"
	TotalCapacity int     `json:"totalCapacity"`
	Price         float64 `json:"price"`
	Status        *string `json:"status,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateSessionRequest) ToServiceRequest(actor domain.Actor) (*models.CreateSessionRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &models.CreateSessionRequest{
		Actor:         actor,
		Date:          date,
		TotalCapacity: r.TotalCapacity,
		Price:         r.Price,
		Status:        r.Status,
	}, nil
}
