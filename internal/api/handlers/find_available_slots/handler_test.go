package find_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	findSlots "github.com/m04kA/SMC-PetCareService/internal/usecase/find_available_slots"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
)

type stubUseCase struct {
	got  *findSlots.Request
	resp *findSlots.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *findSlots.Request) (*findSlots.Response, error) {
	s.got = req
	return s.resp, s.err
}

func TestHandle(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	serviceID := uuid.New()
	staffID := uuid.New()
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, loc)

	uc := &stubUseCase{resp: &findSlots.Response{
		Date:      time.Date(2025, 3, 10, 0, 0, 0, 0, loc),
		ServiceID: serviceID,
		Slots: []findSlots.Slot{
			{StartTime: start, EndTime: start.Add(30 * time.Minute), StaffID: staffID, StaffName: "Anna Petrova"},
		},
	}}
	h := NewHandler(uc, loc, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/appointments/available-slots?serviceId="+serviceID.String()+"&date=2025-03-10&staffId="+staffID.String(), nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, uc.got.StaffID)
	assert.Equal(t, staffID, *uc.got.StaffID)
	_, offset := uc.got.Date.Zone()
	assert.Equal(t, -5*60*60, offset)
	assert.Equal(t, 10, uc.got.Date.Day())

	var body AvailableSlotsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "2025-03-10", body.Date)
	require.Len(t, body.Slots, 1)
	assert.Equal(t, "2025-03-10T09:00:00-05:00", body.Slots[0].StartTime)
	assert.Equal(t, "Anna Petrova", body.Slots[0].StaffName)
}

func TestHandle_Errors(t *testing.T) {
	serviceID := uuid.NewString()

	tests := []struct {
		name       string
		query      string
		err        error
		wantStatus int
	}{
		{"missing service", "?date=2025-03-10", nil, http.StatusBadRequest},
		{"bad date", "?serviceId=" + serviceID + "&date=10.03.2025", nil, http.StatusBadRequest},
		{"bad staff", "?serviceId=" + serviceID + "&date=2025-03-10&staffId=7", nil, http.StatusBadRequest},
		{"service not found", "?serviceId=" + serviceID + "&date=2025-03-10", findSlots.ErrServiceNotFound, http.StatusNotFound},
		{"staff not found", "?serviceId=" + serviceID + "&date=2025-03-10", findSlots.ErrStaffNotFound, http.StatusNotFound},
		{"not qualified", "?serviceId=" + serviceID + "&date=2025-03-10", findSlots.ErrStaffNotQualified, http.StatusBadRequest},
		{"internal", "?serviceId=" + serviceID + "&date=2025-03-10", findSlots.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.err}, nil, logger.NewNop())
			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments/available-slots"+tt.query, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
