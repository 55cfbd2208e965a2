package get_daycare_session

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
	msgNotFound         = "смена не найдена"
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

// Handle GET /api/v1/daycare-sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(mux.Vars(r)["sessionId"])
	if err != nil {
		h.logger.Warn("GET /daycare-sessions/{id} - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /daycare-sessions/{id} - Missing user")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	session, err := h.service.GetSession(r.Context(), sessionID, actor)
	if err != nil {
		if errors.Is(err, daycare.ErrSessionNotFound) {
			h.logger.Warn("GET /daycare-sessions/{id} - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /daycare-sessions/{id} - Failed to get session: session_id=%s, error=%v", sessionID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, session)
}
