package assign_staff_service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/catalog"
	"github.com/m04kA/SMC-PetCareService/internal/service/catalog/models"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
)

type stubService struct {
	got *models.QualificationRequest
	err error
}

func (s *stubService) AssignQualification(_ context.Context, req *models.QualificationRequest) (*models.QualificationResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.QualificationResponse{StaffID: req.StaffID, ServiceID: req.ServiceID, Created: true}, nil
}

func TestHandle(t *testing.T) {
	admin := domain.Actor{ID: uuid.New(), Role: domain.RoleAdmin}
	staffID := uuid.NewString()
	serviceID := uuid.NewString()

	tests := []struct {
		name       string
		actor      *domain.Actor
		staffID    string
		serviceID  string
		err        error
		wantStatus int
	}{
		{"assigned", &admin, staffID, serviceID, nil, http.StatusNoContent},
		{"bad staff id", &admin, "s", serviceID, nil, http.StatusBadRequest},
		{"bad service id", &admin, staffID, "v", nil, http.StatusBadRequest},
		{"no identity", nil, staffID, serviceID, nil, http.StatusUnauthorized},
		{"not admin", &admin, staffID, serviceID, catalog.ErrAccessDenied, http.StatusForbidden},
		{"service not found", &admin, staffID, serviceID, catalog.ErrServiceNotFound, http.StatusNotFound},
		{"staff not found", &admin, staffID, serviceID, catalog.ErrStaffNotFound, http.StatusNotFound},
		{"not staff", &admin, staffID, serviceID, catalog.ErrNotStaff, http.StatusBadRequest},
		{"internal", &admin, staffID, serviceID, catalog.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/api/v1/staff/"+tt.staffID+"/services/"+tt.serviceID, nil)
			req = mux.SetURLVars(req, map[string]string{"staffId": tt.staffID, "serviceId": tt.serviceID})
			if tt.actor != nil {
				req = req.WithContext(middleware.WithActor(req.Context(), *tt.actor))
			}
			rec := httptest.NewRecorder()
			svc := &stubService{err: tt.err}

			NewHandler(svc, logger.NewNop()).Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusNoContent {
				require.NotNil(t, svc.got)
				assert.Equal(t, staffID, svc.got.StaffID.String())
				assert.Equal(t, serviceID, svc.got.ServiceID.String())
			}
		})
	}
}
