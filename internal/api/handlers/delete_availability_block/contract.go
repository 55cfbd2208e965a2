package delete_availability_block

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

type AvailabilityService interface {
	Delete(ctx context.Context, staffID, blockID uuid.UUID, actor domain.Actor) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
