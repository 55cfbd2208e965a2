package update_daycare_booking

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// validateRequest валидирует входные данные запроса и ограничения роли владельца
func validateRequest(req *Request) error {
	if req.BookingID == uuid.Nil {
		return fmt.Errorf("%w: bookingId is required", ErrInvalidInput)
	}

	if req.Status == nil && req.RoomID == nil {
		return ErrEmptyUpdate
	}

	if req.Status != nil && !domain.DaycareBookingStatus(*req.Status).IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidDaycareStatus, *req.Status)
	}

	if req.RoomID != nil && *req.RoomID == uuid.Nil {
		return fmt.Errorf("%w: roomId must not be empty", ErrInvalidInput)
	}

	if req.Actor.IsOwner() {
		if req.RoomID != nil || req.Status == nil || domain.DaycareBookingStatus(*req.Status) != domain.DaycareCancelled {
			return ErrOwnerMayOnlyCancel
		}
	}

	return nil
}
