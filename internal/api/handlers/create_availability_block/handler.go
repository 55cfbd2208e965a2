package create_availability_block

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
	msgInvalidStaffID     = "некорректный ID специалиста"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUser        = "отсутствует пользователь"
	msgForbidden          = "управлять расписанием может администратор или сам специалист"
	msgStaffNotFound      = "специалист не найден"
	msgNotStaff           = "пользователь не является специалистом"
	msgBlockOverlaps      = "окно пересекается с существующим окном доступности"
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

// Handle POST /api/v1/staff/{staffId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, err := uuid.Parse(mux.Vars(r)["staffId"])
	if err != nil {
		h.logger.Warn("POST /staff/{id}/availability - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /staff/{id}/availability - Missing user")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req CreateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /staff/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	block, err := h.service.Create(r.Context(), req.ToServiceRequest(actor, staffID))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("POST /staff/{id}/availability - Access denied: staff_id=%s, user_id=%s", staffID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrStaffNotFound):
			h.logger.Warn("POST /staff/{id}/availability - Staff not found: staff_id=%s", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, availability.ErrNotStaff):
			h.logger.Warn("POST /staff/{id}/availability - Not a staff member: staff_id=%s", staffID)
			handlers.RespondBadRequest(w, msgNotStaff)

		case errors.Is(err, availability.ErrBlockOverlaps):
			h.logger.Warn("POST /staff/{id}/availability - Block overlaps: staff_id=%s", staffID)
			handlers.RespondConflict(w, msgBlockOverlaps)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /staff/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /staff/{id}/availability - Failed to create block: staff_id=%s, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /staff/{id}/availability - Block created successfully: block_id=%s, staff_id=%s",
		block.ID, staffID)
	handlers.RespondJSON(w, http.StatusCreated, block)
}
