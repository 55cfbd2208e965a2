package update_activity_log

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/activitylogs"
	"github.com/m04kA/SMC-PetCareService/internal/service/activitylogs/models"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
)

type stubService struct {
	got *models.UpdateRequest
	err error
}

func (s *stubService) Update(_ context.Context, req *models.UpdateRequest) (*models.ActivityLogResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.ActivityLogResponse{ID: req.ID, Details: *req.Details}, nil
}

func TestHandle(t *testing.T) {
	groomer := domain.Actor{ID: uuid.New(), Role: domain.RoleGroomer}
	id := uuid.NewString()
	body := `{"details":"Ate everything"}`

	tests := []struct {
		name       string
		actor      *domain.Actor
		id         string
		body       string
		err        error
		wantStatus int
	}{
		{"updated", &groomer, id, body, nil, http.StatusOK},
		{"bad id", &groomer, "x", body, nil, http.StatusBadRequest},
		{"no identity", nil, id, body, nil, http.StatusUnauthorized},
		{"unknown field", &groomer, id, `{"petId":"x"}`, nil, http.StatusBadRequest},
		{"not the author", &groomer, id, body, activitylogs.ErrAccessDenied, http.StatusForbidden},
		{"not found", &groomer, id, body, activitylogs.ErrActivityLogNotFound, http.StatusNotFound},
		{"invalid", &groomer, id, body, activitylogs.ErrInvalidInput, http.StatusBadRequest},
		{"internal", &groomer, id, body, activitylogs.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPatch, "/api/v1/activity-logs/"+tt.id, strings.NewReader(tt.body))
			req = mux.SetURLVars(req, map[string]string{"logId": tt.id})
			if tt.actor != nil {
				req = req.WithContext(middleware.WithActor(req.Context(), *tt.actor))
			}
			rec := httptest.NewRecorder()
			svc := &stubService{err: tt.err}

			NewHandler(svc, logger.NewNop()).Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				require.NotNil(t, svc.got)
				assert.Nil(t, svc.got.ActivityType)
				require.NotNil(t, svc.got.Details)
				assert.Equal(t, "Ate everything", *svc.got.Details)
			}
		})
	}
}
