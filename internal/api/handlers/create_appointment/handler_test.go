package create_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/domain"
	createAppointment "github.com/m04kA/SMC-PetCareService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
)

type stubUseCase struct {
	got *createAppointment.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &createAppointment.Response{
		ID:              uuid.New(),
		OwnerID:         req.OwnerID,
		PetID:           req.PetID,
		ServiceID:       req.ServiceID,
		StaffID:         req.StaffID,
		DateTime:        req.StartTime,
		EndTime:         req.StartTime.Add(30 * time.Minute),
		DurationMinutes: 30,
		Status:          string(domain.AppointmentScheduled),
		Notes:           req.Notes,
	}, nil
}

func newRequest(t *testing.T, actor *domain.Actor, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	if actor != nil {
		req = req.WithContext(middleware.WithActor(req.Context(), *actor))
	}
	return req
}

func TestHandle_Created(t *testing.T) {
	owner := domain.Actor{ID: uuid.New(), Role: domain.RoleOwner}
	petID, serviceID, staffID := uuid.New(), uuid.New(), uuid.New()
	uc := &stubUseCase{}
	h := NewHandler(uc, logger.NewNop())

	body := `{"petId":"` + petID.String() + `","serviceId":"` + serviceID.String() +
		`","staffId":"` + staffID.String() + `","dateTime":"2025-03-10T09:30:00Z","notes":"first visit"}`
	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest(t, &owner, body))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, owner.ID, uc.got.OwnerID)
	assert.Equal(t, time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC), uc.got.StartTime.UTC())

	var resp AppointmentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "SCHEDULED", resp.Status)
	assert.Equal(t, "2025-03-10T10:00:00Z", resp.EndTime)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "first visit", *resp.Notes)
}

func TestHandle_Errors(t *testing.T) {
	owner := domain.Actor{ID: uuid.New(), Role: domain.RoleOwner}
	valid := `{"petId":"` + uuid.NewString() + `","serviceId":"` + uuid.NewString() +
		`","staffId":"` + uuid.NewString() + `","dateTime":"2025-03-10T09:30:00Z"}`

	tests := []struct {
		name       string
		actor      *domain.Actor
		body       string
		err        error
		wantStatus int
	}{
		{"no identity", nil, valid, nil, http.StatusUnauthorized},
		{"malformed body", &owner, `{"petId":`, nil, http.StatusBadRequest},
		{"bad date time", &owner, `{"dateTime":"10.03.2025 09:30"}`, nil, http.StatusBadRequest},
		{"pet not found", &owner, valid, createAppointment.ErrPetNotFound, http.StatusNotFound},
		{"pet not owned", &owner, valid, createAppointment.ErrPetNotOwned, http.StatusForbidden},
		{"not qualified", &owner, valid, createAppointment.ErrStaffNotQualified, http.StatusBadRequest},
		{"not available", &owner, valid, createAppointment.ErrStaffNotAvailable, http.StatusConflict},
		{"double booking", &owner, valid, createAppointment.ErrDoubleBooking, http.StatusConflict},
		{"slot taken", &owner, valid, createAppointment.ErrSlotTaken, http.StatusConflict},
		{"internal", &owner, valid, createAppointment.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.err}, logger.NewNop())
			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(t, tt.actor, tt.body))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
