package list_availability_blocks

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/service/availability"
	"github.com/m04kA/SMC-PetCareService/internal/service/availability/models"
)

const (
	msgInvalidStaffID = "некорректный ID специалиста"
	msgInvalidPeriod  = "параметры from и to обязательны, ожидается ISO 8601"
	msgStaffNotFound  = "специалист не найден"
	msgNotStaff       = "пользователь не является специалистом"
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

// Handle GET /api/v1/staff/{staffId}/availability?from=...&to=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, err := uuid.Parse(mux.Vars(r)["staffId"])
	if err != nil {
		h.logger.Warn("GET /staff/{id}/availability - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	query := r.URL.Query()
	from, errFrom := time.Parse(time.RFC3339, query.Get("from"))
	to, errTo := time.Parse(time.RFC3339, query.Get("to"))
	if errFrom != nil || errTo != nil {
		h.logger.Warn("GET /staff/{id}/availability - Invalid period: from=%q, to=%q", query.Get("from"), query.Get("to"))
		handlers.RespondBadRequest(w, msgInvalidPeriod)
		return
	}

	result, err := h.service.List(r.Context(), &models.ListBlocksRequest{
		StaffID: staffID,
		From:    from,
		To:      to,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrStaffNotFound):
			h.logger.Warn("GET /staff/{id}/availability - Staff not found: staff_id=%s", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, availability.ErrNotStaff):
			handlers.RespondBadRequest(w, msgNotStaff)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /staff/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /staff/{id}/availability - Failed to list blocks: staff_id=%s, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/{id}/availability - Retrieved %d blocks: staff_id=%s", len(result.Blocks), staffID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
