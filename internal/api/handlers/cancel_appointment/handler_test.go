package cancel_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/appointments"
	"github.com/m04kA/SMC-PetCareService/internal/service/appointments/models"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
)

type stubService struct {
	err error
}

func (s *stubService) Cancel(_ context.Context, id uuid.UUID, _ domain.Actor) (*models.AppointmentResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.AppointmentResponse{ID: id, Status: string(domain.AppointmentCancelled)}, nil
}

func TestHandle(t *testing.T) {
	owner := domain.Actor{ID: uuid.New(), Role: domain.RoleOwner}
	id := uuid.NewString()

	tests := []struct {
		name       string
		actor      *domain.Actor
		id         string
		err        error
		wantStatus int
	}{
		{"cancelled", &owner, id, nil, http.StatusNoContent},
		{"bad id", &owner, "1", nil, http.StatusBadRequest},
		{"no identity", nil, id, nil, http.StatusUnauthorized},
		{"not found", &owner, id, appointments.ErrAppointmentNotFound, http.StatusNotFound},
		{"foreign", &owner, id, appointments.ErrAccessDenied, http.StatusForbidden},
		{"completed", &owner, id, appointments.ErrCannotCancel, http.StatusBadRequest},
		{"internal", &owner, id, appointments.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/api/v1/appointments/"+tt.id, nil)
			req = mux.SetURLVars(req, map[string]string{"appointmentId": tt.id})
			if tt.actor != nil {
				req = req.WithContext(middleware.WithActor(req.Context(), *tt.actor))
			}
			rec := httptest.NewRecorder()

			NewHandler(&stubService{err: tt.err}, logger.NewNop()).Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusNoContent {
				assert.Empty(t, rec.Body.String())
			}
		})
	}
}
