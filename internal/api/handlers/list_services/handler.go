package list_services

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
)

const msgInvalidActive = "параметр active должен быть true или false"

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/services?active=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	onlyActive := false
	if raw := r.URL.Query().Get("active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /services - Invalid active flag %q: %v", raw, err)
			handlers.RespondBadRequest(w, msgInvalidActive)
			return
		}
		onlyActive = parsed
	}

	result, err := h.service.ListServices(r.Context(), onlyActive)
	if err != nil {
		h.logger.Error("GET /services - Failed to list services: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services - Retrieved %d services: only_active=%t", len(result.Services), onlyActive)
	handlers.RespondJSON(w, http.StatusOK, result)
}
