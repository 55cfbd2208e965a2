package assign_staff_service

import (
	"context"

	"github.com/m04kA/SMC-PetCareService/internal/service/catalog/models"
)

type CatalogService interface {
	AssignQualification(ctx context.Context, req *models.QualificationRequest) (*models.QualificationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
