package update_slot_config

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
	"github.com/m04kA/SMC-PetCareService/internal/service/slotconfig"
	"github.com/m04kA/SMC-PetCareService/internal/service/slotconfig/models"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
	"github.com/m04kA/SMC-PetCareService/pkg/ptr"
)

type stubService struct {
	got *models.UpsertConfigRequest
	err error
}

func (s *stubService) Upsert(_ context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	source := models.SourceService
	if req.ServiceID == nil {
		source = models.SourceGlobal
	}
	return &models.ConfigResponse{ID: ptr.Ptr(int64(1)), ServiceID: req.ServiceID, StepMinutes: req.StepMinutes, Source: source}, nil
}

func serve(h *Handler, actor *domain.Actor, vars map[string]string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/slot-config", strings.NewReader(body))
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}
	if actor != nil {
		req = req.WithContext(middleware.WithActor(req.Context(), *actor))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_ServiceAndGlobal(t *testing.T) {
	admin := domain.Actor{ID: uuid.New(), Role: domain.RoleAdmin}
	serviceID := uuid.New()
	svc := &stubService{}
	h := NewHandler(svc, logger.NewNop())

	rec := serve(h, &admin, map[string]string{"serviceId": serviceID.String()}, `{"stepMinutes":20}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got.ServiceID)
	assert.Equal(t, serviceID, *svc.got.ServiceID)
	assert.Equal(t, 20, svc.got.StepMinutes)

	rec = serve(h, &admin, nil, `{"stepMinutes":10}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.got.ServiceID)
	assert.Contains(t, rec.Body.String(), `"source":"global"`)
}

func TestHandle_Errors(t *testing.T) {
	admin := domain.Actor{ID: uuid.New(), Role: domain.RoleAdmin}

	tests := []struct {
		name       string
		actor      *domain.Actor
		vars       map[string]string
		body       string
		err        error
		wantStatus int
	}{
		{"bad service id", &admin, map[string]string{"serviceId": "x"}, `{"stepMinutes":20}`, nil, http.StatusBadRequest},
		{"no identity", nil, nil, `{"stepMinutes":20}`, nil, http.StatusUnauthorized},
		{"bad body", &admin, nil, `{"step":20}`, nil, http.StatusBadRequest},
		{"not admin", &admin, nil, `{"stepMinutes":20}`, slotconfig.ErrAccessDenied, http.StatusForbidden},
		{"unknown service", &admin, map[string]string{"serviceId": uuid.NewString()}, `{"stepMinutes":20}`, slotconfig.ErrServiceNotFound, http.StatusNotFound},
		{"step out of range", &admin, nil, `{"stepMinutes":0}`, slotconfig.ErrInvalidInput, http.StatusBadRequest},
		{"concurrent create", &admin, nil, `{"stepMinutes":20}`, slotconfig.ErrConfigAlreadyExists, http.StatusConflict},
		{"internal", &admin, nil, `{"stepMinutes":20}`, slotconfig.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&stubService{err: tt.err}, logger.NewNop()), tt.actor, tt.vars, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
