package update_slot_config

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/service/slotconfig"
	"github.com/m04kA/SMC-PetCareService/internal/service/slotconfig/models"
)

const (
	msgInvalidServiceID   = "некорректный ID услуги"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUser        = "отсутствует пользователь"
	msgForbidden          = "изменять настройки слотов может только администратор"
	msgServiceNotFound    = "услуга не найдена"
	msgConflict           = "конфигурация была создана параллельно, повторите запрос"
)

type Handler struct {
	service SlotConfigService
	logger  Logger
}

func NewHandler(service SlotConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/services/{serviceId}/slot-config
// Handle PUT /api/v1/slot-config - глобальная конфигурация, если serviceId в пути нет
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var serviceID *uuid.UUID
	if raw, ok := mux.Vars(r)["serviceId"]; ok {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.logger.Warn("PUT /slot-config - Invalid service ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidServiceID)
			return
		}
		serviceID = &id
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /slot-config - Missing user")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req UpdateSlotConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /slot-config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	config, err := h.service.Upsert(r.Context(), &models.UpsertConfigRequest{
		Actor:       actor,
		ServiceID:   serviceID,
		StepMinutes: req.StepMinutes,
	})
	if err != nil {
		switch {
		case errors.Is(err, slotconfig.ErrAccessDenied):
			h.logger.Warn("PUT /slot-config - Access denied: user_id=%s, role=%s", actor.ID, actor.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, slotconfig.ErrServiceNotFound):
			h.logger.Warn("PUT /slot-config - Service not found: service_id=%v", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, slotconfig.ErrInvalidInput):
			h.logger.Warn("PUT /slot-config - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, slotconfig.ErrConfigAlreadyExists):
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("PUT /slot-config - Failed to save config: service_id=%v, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /slot-config - Config saved: id=%d, source=%s, step=%d", *config.ID, config.Source, config.StepMinutes)
	handlers.RespondJSON(w, http.StatusOK, config)
}
