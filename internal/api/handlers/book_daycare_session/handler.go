package book_daycare_session

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	bookDaycareSession "github.com/m04kA/SMC-PetCareService/internal/usecase/book_daycare_session"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUser        = "отсутствует пользователь"
	msgRoleNotAllowed     = "бронировать дневное пребывание могут только владельцы и администраторы"
	msgPetNotFound        = "питомец не найден"
	msgPetNotOwned        = "питомец не принадлежит пользователю"
	msgSessionNotFound    = "смена не найдена"
	msgSessionUnavailable = "смена заполнена или закрыта"
	msgAlreadyBooked      = "питомец уже забронирован на эту смену"
	msgRoomNotFound       = "комната не найдена"
	msgConcurrentUpdate   = "смена была изменена параллельно, повторите запрос"
)

type Handler struct {
	useCase BookDaycareSessionUseCase
	logger  Logger
}

func NewHandler(useCase BookDaycareSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/daycare-bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /daycare-bookings - Missing user")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req BookDaycareRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /daycare-bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, bookDaycareSession.ErrRoleNotAllowed):
			h.logger.Warn("POST /daycare-bookings - Role not allowed: user_id=%s, role=%s", actor.ID, actor.Role)
			handlers.RespondForbidden(w, msgRoleNotAllowed)

		case errors.Is(err, bookDaycareSession.ErrPetNotFound):
			h.logger.Warn("POST /daycare-bookings - Pet not found: pet_id=%s", req.PetID)
			handlers.RespondNotFound(w, msgPetNotFound)

		case errors.Is(err, bookDaycareSession.ErrPetNotOwned):
			h.logger.Warn("POST /daycare-bookings - Pet not owned: pet_id=%s, user_id=%s", req.PetID, actor.ID)
			handlers.RespondForbidden(w, msgPetNotOwned)

		case errors.Is(err, bookDaycareSession.ErrSessionNotFound):
			h.logger.Warn("POST /daycare-bookings - Session not found: session_id=%s", req.SessionID)
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, bookDaycareSession.ErrSessionUnavailable):
			h.logger.Warn("POST /daycare-bookings - Session unavailable: session_id=%s", req.SessionID)
			handlers.RespondBadRequest(w, msgSessionUnavailable)

		case errors.Is(err, bookDaycareSession.ErrAlreadyBooked):
			h.logger.Warn("POST /daycare-bookings - Already booked: pet_id=%s, session_id=%s", req.PetID, req.SessionID)
			handlers.RespondConflict(w, msgAlreadyBooked)

		case errors.Is(err, bookDaycareSession.ErrRoomNotFound):
			h.logger.Warn("POST /daycare-bookings - Room not found: room_id=%v", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, bookDaycareSession.ErrConcurrentUpdate):
			h.logger.Warn("POST /daycare-bookings - Concurrent update: session_id=%s", req.SessionID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		case errors.Is(err, bookDaycareSession.ErrInvalidInput):
			h.logger.Warn("POST /daycare-bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /daycare-bookings - Failed to book session: session_id=%s, pet_id=%s, error=%v",
				req.SessionID, req.PetID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /daycare-bookings - Booking created successfully: booking_id=%s, session_id=%s",
		resp.ID, resp.SessionID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(resp))
}
