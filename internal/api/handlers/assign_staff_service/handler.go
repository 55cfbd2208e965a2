package assign_staff_service

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/service/catalog"
	"github.com/m04kA/SMC-PetCareService/internal/service/catalog/models"
)

const (
	msgInvalidID       = "некорректный ID специалиста или услуги"
	msgMissingUser     = "отсутствует пользователь"
	msgForbidden       = "назначать квалификации может только администратор"
	msgServiceNotFound = "услуга не найдена"
	msgStaffNotFound   = "специалист не найден"
	msgNotStaff        = "пользователь не может оказывать услуги"
)

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

// Handle PUT /api/v1/staff/{staffId}/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	staffID, errStaff := uuid.Parse(vars["staffId"])
	serviceID, errService := uuid.Parse(vars["serviceId"])
	if errStaff != nil || errService != nil {
		h.logger.Warn("PUT /staff/{id}/services/{serviceId} - Invalid IDs: staff=%q, service=%q",
			vars["staffId"], vars["serviceId"])
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PUT /staff/{id}/services/{serviceId} - Missing user")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	result, err := h.service.AssignQualification(r.Context(), &models.QualificationRequest{
		Actor:     actor,
		StaffID:   staffID,
		ServiceID: serviceID,
	})
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("PUT /staff/{id}/services/{serviceId} - Access denied: user_id=%s, role=%s", actor.ID, actor.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, catalog.ErrStaffNotFound):
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, catalog.ErrNotStaff):
			h.logger.Warn("PUT /staff/{id}/services/{serviceId} - Not a staff member: staff_id=%s", staffID)
			handlers.RespondBadRequest(w, msgNotStaff)

		default:
			h.logger.Error("PUT /staff/{id}/services/{serviceId} - Failed to assign: staff_id=%s, service_id=%s, error=%v",
				staffID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /staff/{id}/services/{serviceId} - Qualification assigned: staff_id=%s, service_id=%s, created=%t",
		staffID, serviceID, result.Created)
	handlers.RespondNoContent(w)
}
