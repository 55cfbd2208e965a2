package update_daycare_session

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/service/daycare"
)

const (
	msgInvalidSessionID    = "некорректный ID смены"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUser         = "отсутствует пользователь"
	msgForbidden           = "управлять сменами может только администратор"
	msgNotFound            = "смена не найдена"
	msgDateTaken           = "смена на эту дату уже существует"
	msgCapacityBelowBooked = "вместимость меньше числа текущих бронирований"
)

type Handler struct {
	service DaycareService
	logger  Logger
}

func NewHandler(service DaycareService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/daycare-sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(mux.Vars(r)["sessionId"])
	if err != nil {
		h.logger.Warn("PATCH /daycare-sessions/{id} - Invalid session ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSessionID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /daycare-sessions/{id} - Missing user")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req UpdateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /daycare-sessions/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(actor, sessionID)
	if err != nil {
		h.logger.Warn("PATCH /daycare-sessions/{id} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	session, err := h.service.UpdateSession(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, daycare.ErrAccessDenied):
			h.logger.Warn("PATCH /daycare-sessions/{id} - Access denied: user_id=%s, role=%s", actor.ID, actor.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, daycare.ErrSessionNotFound):
			h.logger.Warn("PATCH /daycare-sessions/{id} - Session not found: session_id=%s", sessionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, daycare.ErrSessionDateTaken):
			handlers.RespondConflict(w, msgDateTaken)

		case errors.Is(err, daycare.ErrCapacityBelowBookings):
			h.logger.Warn("PATCH /daycare-sessions/{id} - Capacity below bookings: session_id=%s", sessionID)
			handlers.RespondBadRequest(w, msgCapacityBelowBooked)

		case errors.Is(err, daycare.ErrInvalidInput):
			h.logger.Warn("PATCH /daycare-sessions/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /daycare-sessions/{id} - Failed to update session: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /daycare-sessions/{id} - Session updated successfully: session_id=%s, status=%s",
		sessionID, session.Status)
	handlers.RespondJSON(w, http.StatusOK, session)
}
