package update_daycare_session

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
	"github.com/m04kA/SMC-PetCareService/internal/service/daycare"
	"github.com/m04kA/SMC-PetCareService/internal/service/daycare/models"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
)

type stubService struct {
	got *models.UpdateSessionRequest
	err error
}

func (s *stubService) UpdateSession(_ context.Context, req *models.UpdateSessionRequest) (*models.SessionResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.SessionResponse{ID: req.SessionID, Status: string(domain.SessionFull)}, nil
}

func TestHandle(t *testing.T) {
	admin := domain.Actor{ID: uuid.New(), Role: domain.RoleAdmin}
	id := uuid.NewString()
	body := `{"totalCapacity":3}`

	tests := []struct {
		name       string
		actor      *domain.Actor
		id         string
		body       string
		err        error
		wantStatus int
	}{
		{"updated", &admin, id, body, nil, http.StatusOK},
		{"bad id", &admin, "x", body, nil, http.StatusBadRequest},
		{"no identity", nil, id, body, nil, http.StatusUnauthorized},
		{"unknown field", &admin, id, `{"capacity":3}`, nil, http.StatusBadRequest},
		{"bad date", &admin, id, `{"date":"tomorrow"}`, nil, http.StatusBadRequest},
		{"not admin", &admin, id, body, daycare.ErrAccessDenied, http.StatusForbidden},
		{"not found", &admin, id, body, daycare.ErrSessionNotFound, http.StatusNotFound},
		{"date taken", &admin, id, body, daycare.ErrSessionDateTaken, http.StatusConflict},
		{"below bookings", &admin, id, body, daycare.ErrCapacityBelowBookings, http.StatusBadRequest},
		{"invalid", &admin, id, body, daycare.ErrInvalidInput, http.StatusBadRequest},
		{"internal", &admin, id, body, daycare.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPatch, "/api/v1/daycare-sessions/"+tt.id, strings.NewReader(tt.body))
			req = mux.SetURLVars(req, map[string]string{"sessionId": tt.id})
			if tt.actor != nil {
				req = req.WithContext(middleware.WithActor(req.Context(), *tt.actor))
			}
			rec := httptest.NewRecorder()
			svc := &stubService{err: tt.err}

			NewHandler(svc, logger.NewNop()).Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				require.NotNil(t, svc.got)
				require.NotNil(t, svc.got.TotalCapacity)
				assert.Equal(t, 3, *svc.got.TotalCapacity)
				assert.Nil(t, svc.got.Date)
				assert.Nil(t, svc.got.Status)
			}
		})
	}
}

func TestToServiceRequest_ParsesDate(t *testing.T) {
	date := "2025-11-01"
	req := UpdateSessionRequest{Date: &date}

	got, err := req.ToServiceRequest(domain.Actor{}, uuid.New())

	require.NoError(t, err)
	require.NotNil(t, got.Date)
	assert.Equal(t, date, got.Date.Format(domain.DateFormat))
}
