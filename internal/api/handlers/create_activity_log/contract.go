package create_activity_log

import (
	"context"

	"github.com/m04kA/SMC-PetCareService/internal/service/activitylogs/models"
)

type ActivityLogService interface {
	Create(ctx context.Context, req *models.CreateRequest) (*models.ActivityLogResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
