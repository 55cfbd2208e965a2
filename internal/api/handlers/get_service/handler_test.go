package get_service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-PetCareService/internal/service/catalog"
	"github.com/m04kA/SMC-PetCareService/internal/service/catalog/models"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
)

type stubService struct {
	err error
}

func (s *stubService) GetService(_ context.Context, serviceID uuid.UUID) (*models.ServiceResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	minutes := 45
	return &models.ServiceResponse{ID: serviceID, Name: "Bath", DurationMinutes: &minutes, IsActive: true}, nil
}

func TestHandle(t *testing.T) {
	id := uuid.NewString()

	tests := []struct {
		name       string
		id         string
		err        error
		wantStatus int
	}{
		{"found", id, nil, http.StatusOK},
		{"bad id", "svc", nil, http.StatusBadRequest},
		{"not found", id, catalog.ErrServiceNotFound, http.StatusNotFound},
		{"internal", id, catalog.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/services/"+tt.id, nil)
			req = mux.SetURLVars(req, map[string]string{"serviceId": tt.id})
			rec := httptest.NewRecorder()

			NewHandler(&stubService{err: tt.err}, logger.NewNop()).Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"durationMinutes":45`)
			}
		})
	}
}
