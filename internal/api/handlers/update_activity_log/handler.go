package update_activity_log

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
	msgInvalidLogID       = "некорректный ID записи журнала"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUser        = "отсутствует пользователь"
	msgForbidden          = "править запись может ее автор или администратор"
	msgNotFound           = "запись журнала не найдена"
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

// Handle PATCH /api/v1/activity-logs/{logId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	logID, err := uuid.Parse(mux.Vars(r)["logId"])
	if err != nil {
		h.logger.Warn("PATCH /activity-logs/{id} - Invalid log ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidLogID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /activity-logs/{id} - Missing user")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req UpdateActivityLogRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /activity-logs/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	log, err := h.service.Update(r.Context(), req.ToServiceRequest(actor, logID))
	if err != nil {
		switch {
		case errors.Is(err, activitylogs.ErrAccessDenied):
			h.logger.Warn("PATCH /activity-logs/{id} - Access denied: log_id=%s, user_id=%s", logID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, activitylogs.ErrActivityLogNotFound):
			h.logger.Warn("PATCH /activity-logs/{id} - Not found: log_id=%s", logID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, activitylogs.ErrInvalidInput):
			h.logger.Warn("PATCH /activity-logs/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /activity-logs/{id} - Failed to update activity log: log_id=%s, error=%v", logID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /activity-logs/{id} - Activity log updated successfully: log_id=%s, type=%s", logID, log.ActivityType)
	handlers.RespondJSON(w, http.StatusOK, log)
}
