package find_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	findSlots "github.com/m04kA/SMC-PetCareService/internal/usecase/find_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date      string         `json:"date"` // "2025-10-15"
	ServiceID uuid.UUID      `json:"serviceId"`
	Slots     []SlotResponse `json:"slots"`
}

type SlotResponse struct {
	StartTime string    `json:"startTime"` // RFC3339
	EndTime   string    `json:"endTime"`
	StaffID   uuid.UUID `json:"staffId"`
	StaffName string    `json:"staffName"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *findSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime: s.StartTime.Format(time.RFC3339),
			EndTime:   s.EndTime.Format(time.RFC3339),
			StaffID:   s.StaffID,
			StaffName: s.StaffName,
		})
	}

	return &AvailableSlotsResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		ServiceID: resp.ServiceID,
		Slots:     slots,
	}
}
