package list_daycare_bookings

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/daycare/models"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
)

type stubService struct {
	err error
}

func (s *stubService) ListBookings(_ context.Context, actor domain.Actor) (*models.BookingListResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingListResponse{Bookings: []models.BookingResponse{{ID: uuid.New(), OwnerID: actor.ID}}}, nil
}

func TestHandle(t *testing.T) {
	owner := domain.Actor{ID: uuid.New(), Role: domain.RoleOwner}

	tests := []struct {
		name       string
		actor      *domain.Actor
		err        error
		wantStatus int
	}{
		{"listed", &owner, nil, http.StatusOK},
		{"no identity", nil, nil, http.StatusUnauthorized},
		{"internal", &owner, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/daycare-bookings", nil)
			if tt.actor != nil {
				req = req.WithContext(middleware.WithActor(req.Context(), *tt.actor))
			}
			rec := httptest.NewRecorder()

			NewHandler(&stubService{err: tt.err}, logger.NewNop()).Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, rec.Body.String(), owner.ID.String())
			}
		})
	}
}
