package create_activity_log

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/service/activitylogs"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingPetID        = "не указан ID питомца"
	msgMissingUser         = "отсутствует пользователь"
	msgForbidden           = "вести журнал могут только специалисты и администраторы"
	msgPetNotFound         = "питомец не найден"
	msgBookingNotFound     = "бронирование не найдено"
	msgAppointmentNotFound = "запись на услугу не найдена"
	msgLinkMismatch        = "бронирование или запись относятся к другому питомцу"
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

// Handle POST /api/v1/activity-logs
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /activity-logs - Missing user")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req CreateActivityLogRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /activity-logs - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.PetID == uuid.Nil {
		h.logger.Warn("POST /activity-logs - Missing pet ID")
		handlers.RespondBadRequest(w, msgMissingPetID)
		return
	}

	log, err := h.service.Create(r.Context(), req.ToServiceRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, activitylogs.ErrAccessDenied):
			h.logger.Warn("POST /activity-logs - Access denied: user_id=%s, role=%s", actor.ID, actor.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, activitylogs.ErrPetNotFound):
			handlers.RespondNotFound(w, msgPetNotFound)

		case errors.Is(err, activitylogs.ErrBookingNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, activitylogs.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, activitylogs.ErrLinkMismatch):
			h.logger.Warn("POST /activity-logs - Link mismatch: pet_id=%s", req.PetID)
			handlers.RespondBadRequest(w, msgLinkMismatch)

		case errors.Is(err, activitylogs.ErrInvalidInput):
			h.logger.Warn("POST /activity-logs - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /activity-logs - Failed to create activity log: pet_id=%s, error=%v", req.PetID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /activity-logs - Activity log created successfully: id=%s, pet_id=%s, type=%s",
		log.ID, log.PetID, log.ActivityType)
	handlers.RespondJSON(w, http.StatusCreated, log)
}
