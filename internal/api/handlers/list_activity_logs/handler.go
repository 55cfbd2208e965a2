package list_activity_logs

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/service/activitylogs/models"
)

const (
	msgMissingUser = "отсутствует пользователь"
	msgInvalidID   = "некорректный параметр %s"
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

// Handle GET /api/v1/activity-logs?petId=...&daycareBookingId=...&appointmentId=...
// Владелец видит только записи о своих питомцах, персонал и администраторы - все
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /activity-logs - Missing user")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	query := r.URL.Query()
	req := &models.ListRequest{Actor: actor}

	filters := []struct {
		key string
		dst **uuid.UUID
	}{
		{"petId", &req.PetID},
		{"daycareBookingId", &req.DaycareBookingID},
		{"appointmentId", &req.AppointmentID},
	}
	for _, f := range filters {
		id, err := parseOptionalUUID(query, f.key)
		if err != nil {
			h.logger.Warn("GET /activity-logs - Invalid %s: %v", f.key, err)
			handlers.RespondBadRequest(w, fmt.Sprintf(msgInvalidID, f.key))
			return
		}
		*f.dst = id
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /activity-logs - Failed to list activity logs: user_id=%s, error=%v", actor.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /activity-logs - Retrieved %d activity logs: user_id=%s, role=%s",
		len(result.ActivityLogs), actor.ID, actor.Role)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseOptionalUUID(query url.Values, key string) (*uuid.UUID, error) {
	raw := query.Get(key)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
