package delete_daycare_session

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

type DaycareService interface {
	DeleteSession(ctx context.Context, id uuid.UUID, actor domain.Actor) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
