package get_activity_log

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/activitylogs/models"
)

type ActivityLogService interface {
	GetByID(ctx context.Context, id uuid.UUID, actor domain.Actor) (*models.ActivityLogResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
