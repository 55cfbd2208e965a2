package get_activity_log

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/service/activitylogs"
)

const (
	msgInvalidLogID = "некорректный ID записи журнала"
	msgMissingUser  = "отсутствует пользователь"
	msgForbidden    = "нет доступа к записи журнала"
	msgNotFound     = "запись журнала не найдена"
)

type Handler struct {
	service ActivityLogService
	logger  Logger
}

func NewHandler(service ActivityLogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/activity-logs/{logId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	logID, err := uuid.Parse(mux.Vars(r)["logId"])
	if err != nil {
		h.logger.Warn("GET /activity-logs/{id} - Invalid log ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLogID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /activity-logs/{id} - Missing user")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	log, err := h.service.GetByID(r.Context(), logID, actor)
	if err != nil {
		switch {
		case errors.Is(err, activitylogs.ErrAccessDenied):
			h.logger.Warn("GET /activity-logs/{id} - Access denied: log_id=%s, user_id=%s", logID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, activitylogs.ErrActivityLogNotFound):
			h.logger.Warn("GET /activity-logs/{id} - Not found: log_id=%s", logID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /activity-logs/{id} - Failed to get activity log: log_id=%s, error=%v", logID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /activity-logs/{id} - Activity log retrieved: log_id=%s, user_id=%s", logID, actor.ID)
	handlers.RespondJSON(w, http.StatusOK, log)
}
