package book_daycare_session

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Actor.Role != domain.RoleOwner && req.Actor.Role != domain.RoleAdmin {
		return ErrRoleNotAllowed
	}

	if req.SessionID == uuid.Nil {
		return fmt.Errorf("%w: daycareSessionId is required", ErrInvalidInput)
	}

	if req.PetID == uuid.Nil {
		return fmt.Errorf("%w: petId is required", ErrInvalidInput)
	}

	if req.RoomID != nil && *req.RoomID == uuid.Nil {
		return fmt.Errorf("%w: roomId must not be empty", ErrInvalidInput)
	}

	return nil
}
