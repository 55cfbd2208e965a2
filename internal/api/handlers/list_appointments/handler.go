package list_appointments

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/appointments/models"
)

const (
	msgMissingUser   = "отсутствует пользователь"
	msgInvalidFrom   = "некорректный параметр from, ожидается ISO 8601"
	msgInvalidTo     = "некорректный параметр to, ожидается ISO 8601"
	msgInvalidFilter = "некорректные параметры фильтра"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments?status=...&from=...&to=...
// Владелец видит только свои записи, персонал и администраторы - все
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /appointments - Missing user")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	query := r.URL.Query()
	req := &models.ListRequest{Actor: actor}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	from, err := parseOptionalTime(query, "from")
	if err != nil {
		h.logger.Warn("GET /appointments - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFrom)
		return
	}
	req.From = from

	to, err := parseOptionalTime(query, "to")
	if err != nil {
		h.logger.Warn("GET /appointments - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTo)
		return
	}
	req.To = to

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrBadRequest) {
			h.logger.Warn("GET /appointments - Invalid filter: user_id=%s, error=%v", actor.ID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		h.logger.Error("GET /appointments - Failed to list appointments: user_id=%s, error=%v", actor.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /appointments - Retrieved %d appointments: user_id=%s, role=%s",
		len(result.Appointments), actor.ID, actor.Role)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseOptionalTime(query url.Values, key string) (*time.Time, error) {
	raw := query.Get(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
