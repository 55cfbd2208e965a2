package delete_daycare_session

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/service/daycare"
)

const (
	msgInvalidSessionID = "некорректный ID смены"
	msgMissingUser      = "отсутствует пользователь"
	msgForbidden        = "управлять сменами может только администратор"
	msgNotFound         = "смена не найдена"
	msgHasBookings      = "у смены есть бронирования, удаление невозможно"
)

type Handler struct {
	service DaycareService
	logger  Logger
}

func NewHandler(service DaycareService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/daycare-sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(mux.Vars(r)["sessionId"])
	if err != nil {
		h.logger.Warn("DELETE /daycare-sessions/{id} - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /daycare-sessions/{id} - Missing user")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	if err := h.service.DeleteSession(r.Context(), sessionID, actor); err != nil {
		switch {
		case errors.Is(err, daycare.ErrAccessDenied):
			h.logger.Warn("DELETE /daycare-sessions/{id} - Access denied: user_id=%s, role=%s", actor.ID, actor.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, daycare.ErrSessionNotFound):
			h.logger.Warn("DELETE /daycare-sessions/{id} - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, daycare.ErrSessionHasBookings):
			h.logger.Warn("DELETE /daycare-sessions/{id} - Session has bookings: session_id=%s", sessionID)
			handlers.RespondBadRequest(w, msgHasBookings)

		default:
			h.logger.Error("DELETE /daycare-sessions/{id} - Failed to delete session: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /daycare-sessions/{id} - Session deleted successfully: session_id=%s", sessionID)
	handlers.RespondNoContent(w)
}
