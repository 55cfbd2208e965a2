package create_daycare_session

import (
	"context"

	"github.com/m04kA/SMC-PetCareService/internal/service/daycare/models"
)

type DaycareService interface {
	CreateSession(ctx context.Context, req *models.CreateSessionRequest) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
