package delete_availability_block

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/service/availability"
)

const (
	msgInvalidID     = "некорректный ID специалиста или окна"
	msgMissingUser   = "отсутствует пользователь"
	msgForbidden     = "управлять расписанием может администратор или сам специалист"
	msgBlockNotFound = "окно доступности не найдено"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/staff/{staffId}/availability/{blockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	staffID, errStaff := uuid.Parse(vars["staffId"])
	blockID, errBlock := uuid.Parse(vars["blockId"])
	if errStaff != nil || errBlock != nil {
		h.logger.Warn("DELETE /staff/{id}/availability/{blockId} - Invalid IDs: staff=%q, block=%q",
			vars["staffId"], vars["blockId"])
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /staff/{id}/availability/{blockId} - Missing user")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	if err := h.service.Delete(r.Context(), staffID, blockID, actor); err != nil {
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("DELETE /staff/{id}/availability/{blockId} - Access denied: staff_id=%s, user_id=%s",
				staffID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrBlockNotFound):
			h.logger.Warn("DELETE /staff/{id}/availability/{blockId} - Block not found: block_id=%s", blockID)
			handlers.RespondNotFound(w, msgBlockNotFound)

		default:
			h.logger.Error("DELETE /staff/{id}/availability/{blockId} - Failed to delete block: block_id=%s, error=%v",
				blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /staff/{id}/availability/{blockId} - Block deleted successfully: block_id=%s, staff_id=%s",
		blockID, staffID)
	handlers.RespondNoContent(w)
}
