package list_availability_blocks

import (
	"context"

	"github.com/m04kA/SMC-PetCareService/internal/service/availability/models"
)

type AvailabilityService interface {
	List(ctx context.Context, req *models.ListBlocksRequest) (*models.BlockListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
