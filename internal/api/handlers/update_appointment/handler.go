package update_appointment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	"github.com/m04kA/SMC-PetCareService/internal/domain"
	updateAppointment "github.com/m04kA/SMC-PetCareService/internal/usecase/update_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUser          = "отсутствует пользователь"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "доступ запрещен"
	msgOwnerFieldForbidden  = "владелец может изменить только заметки или отменить запись"
	msgFieldNotEditable     = "питомца и услугу записи изменить нельзя"
	msgEmptyUpdate          = "нет полей для изменения"
	msgStaffNotFound        = "специалист не найден"
	msgStaffNotQualified    = "специалист не оказывает услугу записи"
	msgStaffNotAvailable    = "специалист не работает в выбранное время"
	msgDoubleBooking        = "у специалиста уже есть запись на это время"
	msgSlotTaken            = "слот только что заняли, запросите свободные слоты заново"
)

type Handler struct {
	useCase UpdateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase UpdateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := uuid.Parse(mux.Vars(r)["appointmentId"])
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id} - Missing user")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor, appointmentID))
	if err != nil {
		switch {
		case errors.Is(err, updateAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id} - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, updateAppointment.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id} - Access denied: appointment_id=%s, user_id=%s", appointmentID, actor.ID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, updateAppointment.ErrOwnerFieldForbidden):
			h.logger.Warn("PATCH /appointments/{id} - Owner field forbidden: appointment_id=%s, user_id=%s", appointmentID, actor.ID)
			handlers.RespondForbidden(w, msgOwnerFieldForbidden)

		case errors.Is(err, updateAppointment.ErrFieldNotEditable):
			handlers.RespondBadRequest(w, msgFieldNotEditable)

		case errors.Is(err, updateAppointment.ErrEmptyUpdate):
			handlers.RespondBadRequest(w, msgEmptyUpdate)

		case errors.Is(err, updateAppointment.ErrStaffNotFound):
			h.logger.Warn("PATCH /appointments/{id} - Staff not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, updateAppointment.ErrStaffNotQualified):
			h.logger.Warn("PATCH /appointments/{id} - Staff not qualified: appointment_id=%s", appointmentID)
			handlers.RespondBadRequest(w, msgStaffNotQualified)

		case errors.Is(err, updateAppointment.ErrStaffNotAvailable):
			h.logger.Warn("PATCH /appointments/{id} - Staff not available: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgStaffNotAvailable)

		case errors.Is(err, updateAppointment.ErrDoubleBooking):
			h.logger.Warn("PATCH /appointments/{id} - Double booking: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgDoubleBooking)

		case errors.Is(err, updateAppointment.ErrSlotTaken):
			h.logger.Warn("PATCH /appointments/{id} - Slot taken concurrently: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, updateAppointment.ErrInternal):
			h.logger.Error("PATCH /appointments/{id} - Failed to update appointment: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)

		case errors.Is(err, domain.ErrBadRequest):
			// Некорректные статус, дата, время и запрещенные переходы статусов
			h.logger.Warn("PATCH /appointments/{id} - Rejected: appointment_id=%s, error=%v", appointmentID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Warn("PATCH /appointments/{id} - Rejected: appointment_id=%s, error=%v", appointmentID, err)
			handlers.RespondDomainError(w, err)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id} - Appointment updated successfully: appointment_id=%s, status=%s, user_id=%s",
		appointmentID, result.Status, actor.ID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
