package list_daycare_sessions

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
	got domain.Actor
	err error
}

func (s *stubService) ListSessions(_ context.Context, actor domain.Actor) (*models.SessionListResponse, error) {
	s.got = actor
	if s.err != nil {
		return nil, s.err
	}
	return &models.SessionListResponse{Sessions: []models.SessionResponse{{ID: uuid.New(), Date: "2025-10-15"}}}, nil
}

func TestHandle(t *testing.T) {
	owner := domain.Actor{ID: uuid.New(), Role: domain.RoleOwner}

	t.Run("listed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/daycare-sessions", nil)
		req = req.WithContext(middleware.WithActor(req.Context(), owner))
		rec := httptest.NewRecorder()
		svc := &stubService{}

		NewHandler(svc, logger.NewNop()).Handle(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, owner, svc.got)
		assert.Contains(t, rec.Body.String(), `"date":"2025-10-15"`)
	})

	t.Run("no identity", func(t *testing.T) {
		rec := httptest.NewRecorder()
		NewHandler(&stubService{}, logger.NewNop()).
			Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/daycare-sessions", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("internal", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/daycare-sessions", nil)
		req = req.WithContext(middleware.WithActor(req.Context(), owner))
		rec := httptest.NewRecorder()

		NewHandler(&stubService{err: errors.New("db down")}, logger.NewNop()).Handle(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "db down")
	})
}
