package list_daycare_bookings

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

// Handle GET /api/v1/daycare-bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /daycare-bookings - Missing user")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	result, err := h.service.ListBookings(r.Context(), actor)
	if err != nil {
		h.logger.Error("GET /daycare-bookings - Failed to list bookings: user_id=%s, error=%v", actor.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /daycare-bookings - Retrieved %d bookings: user_id=%s", len(result.Bookings), actor.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
