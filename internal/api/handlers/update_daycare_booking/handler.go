package update_daycare_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/domain"
	updateDaycareBooking "github.com/m04kA/SMC-PetCareService/internal/usecase/update_daycare_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUser        = "отсутствует пользователь"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "нет доступа к бронированию"
	msgOwnerMayOnlyCancel = "владелец может только отменить бронирование"
	msgOwnerCancelDenied  = "отменить можно только бронирование в статусе BOOKED"
	msgSessionUnavailable = "смена заполнена или закрыта"
	msgAlreadyBooked      = "питомец уже забронирован на эту смену"
	msgRoomNotFound       = "комната не найдена"
	msgEmptyUpdate        = "нет полей для обновления"
	msgConcurrentUpdate   = "бронирование было изменено параллельно, повторите запрос"
)

type Handler struct {
	useCase UpdateDaycareBookingUseCase
	logger  Logger
}

func NewHandler(useCase UpdateDaycareBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/daycare-bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(mux.Vars(r)["bookingId"])
	if err != nil {
		h.logger.Warn("PATCH /daycare-bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /daycare-bookings/{id} - Missing user")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /daycare-bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor, bookingID))
	if err != nil {
		switch {
		case errors.Is(err, updateDaycareBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /daycare-bookings/{id} - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateDaycareBooking.ErrAccessDenied):
			h.logger.Warn("PATCH /daycare-bookings/{id} - Access denied: booking_id=%s, user_id=%s", bookingID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateDaycareBooking.ErrOwnerMayOnlyCancel):
			h.logger.Warn("PATCH /daycare-bookings/{id} - Owner may only cancel: booking_id=%s", bookingID)
			handlers.RespondForbidden(w, msgOwnerMayOnlyCancel)

		case errors.Is(err, updateDaycareBooking.ErrOwnerCancelNotAllowed):
			h.logger.Warn("PATCH /daycare-bookings/{id} - Owner cancel not allowed: booking_id=%s", bookingID)
			handlers.RespondBadRequest(w, msgOwnerCancelDenied)

		case errors.Is(err, updateDaycareBooking.ErrSessionUnavailable):
			h.logger.Warn("PATCH /daycare-bookings/{id} - Session unavailable: booking_id=%s", bookingID)
			handlers.RespondBadRequest(w, msgSessionUnavailable)

		case errors.Is(err, updateDaycareBooking.ErrAlreadyBooked):
			h.logger.Warn("PATCH /daycare-bookings/{id} - Already booked: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgAlreadyBooked)

		case errors.Is(err, updateDaycareBooking.ErrRoomNotFound):
			h.logger.Warn("PATCH /daycare-bookings/{id} - Room not found: room_id=%v", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, updateDaycareBooking.ErrEmptyUpdate):
			h.logger.Warn("PATCH /daycare-bookings/{id} - Empty update: booking_id=%s", bookingID)
			handlers.RespondBadRequest(w, msgEmptyUpdate)

		case errors.Is(err, updateDaycareBooking.ErrConcurrentUpdate):
			h.logger.Warn("PATCH /daycare-bookings/{id} - Concurrent update: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		case errors.Is(err, domain.ErrBadRequest):
			// Некорректный статус или недопустимый переход
			h.logger.Warn("PATCH /daycare-bookings/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /daycare-bookings/{id} - Failed to update booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /daycare-bookings/{id} - Booking updated successfully: booking_id=%s, status=%s",
		bookingID, resp.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
