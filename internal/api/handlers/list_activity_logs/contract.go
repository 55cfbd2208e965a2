package list_activity_logs

import (
	"context"

	"github.com/m04kA/SMC-PetCareService/internal/service/activitylogs/models"
)

type ActivityLogService interface {
	List(ctx context.Context, req *models.ListRequest) (*models.ActivityLogListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
