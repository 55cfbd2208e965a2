package create_daycare_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/service/daycare"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUser        = "отсутствует пользователь"
	msgForbidden          = "управлять сменами может только администратор"
	msgDateTaken          = "смена на эту дату уже существует"
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

// Handle POST /api/v1/daycare-sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /daycare-sessions - Missing user")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req CreateSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /daycare-sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(actor)
	if err != nil {
		h.logger.Warn("POST /daycare-sessions - Invalid date %q: %v", req.Date, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	session, err := h.service.CreateSession(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, daycare.ErrAccessDenied):
			h.logger.Warn("POST /daycare-sessions - Access denied: user_id=%s, role=%s", actor.ID, actor.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, daycare.ErrSessionDateTaken):
			h.logger.Warn("POST /daycare-sessions - Date taken: date=%s", req.Date)
			handlers.RespondConflict(w, msgDateTaken)

		case errors.Is(err, daycare.ErrInvalidInput):
			h.logger.Warn("POST /daycare-sessions - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /daycare-sessions - Failed to create session: date=%s, error=%v", req.Date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /daycare-sessions - Session created successfully: session_id=%s, date=%s", session.ID, session.Date)
	handlers.RespondJSON(w, http.StatusCreated, session)
}
