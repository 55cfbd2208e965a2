package update_appointment

import (
	"context"
	"fmt"
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
	updateAppointment "github.com/m04kA/SMC-PetCareService/internal/usecase/update_appointment"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
)

type stubUseCase struct {
	got *updateAppointment.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *updateAppointment.Request) (*updateAppointment.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	status := string(domain.AppointmentScheduled)
	if req.Status != nil {
		status = *req.Status
	}
	return &updateAppointment.Response{ID: req.AppointmentID, Status: status}, nil
}

func serve(h *Handler, actor *domain.Actor, id, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/"+id, strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"appointmentId": id})
	if actor != nil {
		req = req.WithContext(middleware.WithActor(req.Context(), *actor))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_PassesFields(t *testing.T) {
	staff := domain.Actor{ID: uuid.New(), Role: domain.RoleClinicStaff}
	newStaff := uuid.New()
	uc := &stubUseCase{}
	h := NewHandler(uc, logger.NewNop())

	id := uuid.New()
	body := `{"status":"CONFIRMED","staffId":"` + newStaff.String() + `","newAppointmentDate":"2025-03-11","newAppointmentTime":"14:30"}`
	rec := serve(h, &staff, id.String(), body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, uc.got.AppointmentID)
	assert.Equal(t, staff, uc.got.Actor)
	require.NotNil(t, uc.got.StaffID)
	assert.Equal(t, newStaff, *uc.got.StaffID)
	assert.Equal(t, "2025-03-11", *uc.got.NewDate)
	assert.Equal(t, "14:30", *uc.got.NewTime)
	assert.Nil(t, uc.got.Notes)
	assert.Contains(t, rec.Body.String(), `"status":"CONFIRMED"`)
}

func TestHandle_Errors(t *testing.T) {
	owner := domain.Actor{ID: uuid.New(), Role: domain.RoleOwner}
	id := uuid.NewString()

	tests := []struct {
		name       string
		actor      *domain.Actor
		id         string
		body       string
		err        error
		wantStatus int
	}{
		{"bad id", &owner, "abc", `{}`, nil, http.StatusBadRequest},
		{"no identity", nil, id, `{}`, nil, http.StatusUnauthorized},
		{"unknown field", &owner, id, `{"dateTime":"x"}`, nil, http.StatusBadRequest},
		{"not found", &owner, id, `{"notes":"x"}`, updateAppointment.ErrAppointmentNotFound, http.StatusNotFound},
		{"foreign", &owner, id, `{"notes":"x"}`, updateAppointment.ErrAccessDenied, http.StatusForbidden},
		{"owner reschedules", &owner, id, `{"newAppointmentTime":"10:00"}`, updateAppointment.ErrOwnerFieldForbidden, http.StatusForbidden},
		{"owner confirms", &owner, id, `{"status":"CONFIRMED"}`, fmt.Errorf("%w: owners may only cancel", domain.ErrForbidden), http.StatusForbidden},
		{"terminal", &owner, id, `{"status":"CANCELLED"}`, fmt.Errorf("%w: appointment is COMPLETED", domain.ErrBadRequest), http.StatusBadRequest},
		{"empty", &owner, id, `{}`, updateAppointment.ErrEmptyUpdate, http.StatusBadRequest},
		{"double booking", &owner, id, `{"staffId":"` + uuid.NewString() + `"}`, updateAppointment.ErrDoubleBooking, http.StatusConflict},
		{"slot taken", &owner, id, `{"newAppointmentTime":"10:00"}`, updateAppointment.ErrSlotTaken, http.StatusConflict},
		{"internal", &owner, id, `{"notes":"x"}`, updateAppointment.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&stubUseCase{err: tt.err}, logger.NewNop()), tt.actor, tt.id, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
