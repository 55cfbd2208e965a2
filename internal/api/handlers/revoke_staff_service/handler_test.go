package revoke_staff_service

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
	"github.com/m04kA/SMC-PetCareService/internal/service/catalog"
	"github.com/m04kA/SMC-PetCareService/internal/service/catalog/models"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
)

type stubService struct {
	err error
}

func (s *stubService) RevokeQualification(context.Context, *models.QualificationRequest) error {
	return s.err
}

func TestHandle(t *testing.T) {
	admin := domain.Actor{ID: uuid.New(), Role: domain.RoleAdmin}
	staffID := uuid.NewString()
	serviceID := uuid.NewString()

	tests := []struct {
		name       string
		actor      *domain.Actor
		staffID    string
		err        error
		wantStatus int
	}{
		{"revoked", &admin, staffID, nil, http.StatusNoContent},
		{"bad staff id", &admin, "s", nil, http.StatusBadRequest},
		{"no identity", nil, staffID, nil, http.StatusUnauthorized},
		{"not admin", &admin, staffID, catalog.ErrAccessDenied, http.StatusForbidden},
		{"not qualified", &admin, staffID, catalog.ErrQualificationNotFound, http.StatusNotFound},
		{"internal", &admin, staffID, catalog.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/api/v1/staff/"+tt.staffID+"/services/"+serviceID, nil)
			req = mux.SetURLVars(req, map[string]string{"staffId": tt.staffID, "serviceId": serviceID})
			if tt.actor != nil {
				req = req.WithContext(middleware.WithActor(req.Context(), *tt.actor))
			}
			rec := httptest.NewRecorder()

			NewHandler(&stubService{err: tt.err}, logger.NewNop()).Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
