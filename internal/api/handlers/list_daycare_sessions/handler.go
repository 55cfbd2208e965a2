package list_daycare_sessions

import (
	"net/http"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
)

const msgMissingUser = "отсутствует пользователь"

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

// Handle GET /api/v1/daycare-sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /daycare-sessions - Missing user")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	result, err := h.service.ListSessions(r.Context(), actor)
	if err != nil {
		h.logger.Error("GET /daycare-sessions - Failed to list sessions: user_id=%s, error=%v", actor.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /daycare-sessions - Retrieved %d sessions: user_id=%s", len(result.Sessions), actor.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
