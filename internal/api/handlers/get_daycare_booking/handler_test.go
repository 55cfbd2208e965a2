package get_daycare_booking

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
	"github.com/m04kA/SMC-PetCareService/internal/service/daycare"
	"github.com/m04kA/SMC-PetCareService/internal/service/daycare/models"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
)

type stubService struct {
	err error
}

func (s *stubService) GetBooking(_ context.Context, id uuid.UUID, actor domain.Actor) (*models.BookingResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingResponse{ID: id, OwnerID: actor.ID, Status: string(domain.DaycareBooked)}, nil
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
		{"bad id", &owner, "?", nil, http.StatusBadRequest},
		{"no identity", nil, id, nil, http.StatusUnauthorized},
		{"not found", &owner, id, daycare.ErrBookingNotFound, http.StatusNotFound},
		{"foreign", &owner, id, daycare.ErrAccessDenied, http.StatusForbidden},
		{"internal", &owner, id, daycare.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/daycare-bookings/"+tt.id, nil)
			req = mux.SetURLVars(req, map[string]string{"bookingId": tt.id})
			if tt.actor != nil {
				req = req.WithContext(middleware.WithActor(req.Context(), *tt.actor))
			}
			rec := httptest.NewRecorder()

			NewHandler(&stubService{err: tt.err}, logger.NewNop()).Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"id":"`+id+`"`)
			}
		})
	}
}
