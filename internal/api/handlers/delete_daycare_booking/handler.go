package delete_daycare_booking

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
	msgInvalidBookingID = "некорректный ID бронирования"
	msgMissingUser      = "отсутствует пользователь"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "нет доступа к бронированию"
	msgNotDeletable     = "владелец может удалить только бронирование в статусе BOOKED"
	msgConcurrentUpdate = "смена была изменена параллельно, повторите запрос"
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

// Handle DELETE /api/v1/daycare-bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := uuid.Parse(mux.Vars(r)["bookingId"])
	if err != nil {
		h.logger.Warn("DELETE /daycare-bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /daycare-bookings/{id} - Missing user")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	if err := h.service.DeleteBooking(r.Context(), bookingID, actor); err != nil {
		switch {
		case errors.Is(err, daycare.ErrBookingNotFound):
			h.logger.Warn("DELETE /daycare-bookings/{id} - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, daycare.ErrAccessDenied):
			h.logger.Warn("DELETE /daycare-bookings/{id} - Access denied: booking_id=%s, user_id=%s", bookingID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, daycare.ErrBookingNotDeletable):
			h.logger.Warn("DELETE /daycare-bookings/{id} - Booking not deletable: booking_id=%s", bookingID)
			handlers.RespondBadRequest(w, msgNotDeletable)

		case errors.Is(err, daycare.ErrConcurrentUpdate):
			h.logger.Warn("DELETE /daycare-bookings/{id} - Concurrent update: booking_id=%s", bookingID)
			handlers.RespondConflict(w, msgConcurrentUpdate)

		default:
			h.logger.Error("DELETE /daycare-bookings/{id} - Failed to delete booking: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /daycare-bookings/{id} - Booking deleted successfully: booking_id=%s", bookingID)
	handlers.RespondNoContent(w)
}
