package delete_activity_log

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
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
)

type stubService struct {
	err error
}

func (s *stubService) Delete(context.Context, uuid.UUID, domain.Actor) error {
	return s.err
}

func TestHandle(t *testing.T) {
	admin := domain.Actor{ID: uuid.New(), Role: domain.RoleAdmin}
	id := uuid.NewString()

	tests := []struct {
		name       string
		actor      *domain.Actor
		id         string
		err        error
		wantStatus int
	}{
		{"deleted", &admin, id, nil, http.StatusNoContent},
		{"bad id", &admin, "x", nil, http.StatusBadRequest},
		{"no identity", nil, id, nil, http.StatusUnauthorized},
		{"not admin", &admin, id, activitylogs.ErrAccessDenied, http.StatusForbidden},
		{"not found", &admin, id, activitylogs.ErrActivityLogNotFound, http.StatusNotFound},
		{"internal", &admin, id, activitylogs.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/api/v1/activity-logs/"+tt.id, nil)
			req = mux.SetURLVars(req, map[string]string{"logId": tt.id})
			if tt.actor != nil {
				req = req.WithContext(middleware.WithActor(req.Context(), *tt.actor))
			}
			rec := httptest.NewRecorder()

			NewHandler(&stubService{err: tt.err}, logger.NewNop()).Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
