package get_activity_log

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
	"github.com/m04kA/SMC-PetCareService/internal/service/activitylogs"
	"github.com/m04kA/SMC-PetCareService/internal/service/activitylogs/models"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
)

type stubService struct {
	err error
}

func (s *stubService) GetByID(_ context.Context, id uuid.UUID, _ domain.Actor) (*models.ActivityLogResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.ActivityLogResponse{ID: id, ActivityType: string(domain.ActivityGrooming), Details: "Trim"}, nil
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
		{"found", &owner, id, nil, http.StatusOK},
		{"bad id", &owner, "log", nil, http.StatusBadRequest},
		{"no identity", nil, id, nil, http.StatusUnauthorized},
		{"foreign", &owner, id, activitylogs.ErrAccessDenied, http.StatusForbidden},
		{"not found", &owner, id, activitylogs.ErrActivityLogNotFound, http.StatusNotFound},
		{"internal", &owner, id, activitylogs.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/activity-logs/"+tt.id, nil)
			req = mux.SetURLVars(req, map[string]string{"logId": tt.id})
			if tt.actor != nil {
				req = req.WithContext(middleware.WithActor(req.Context(), *tt.actor))
			}
			rec := httptest.NewRecorder()

			NewHandler(&stubService{err: tt.err}, logger.NewNop()).Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"activityType":"GROOMING"`)
			}
		})
	}
}
