package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/api/middleware"
	createAppointment "github.com/m04kA/SMC-PetCareService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidDateTime        = "некорректный формат dateTime, ожидается ISO 8601 (2025-07-15T14:30:00Z)"
	msgMissingUser            = "отсутствует пользователь"
	msgPetNotFound            = "питомец не найден"
	msgPetNotOwned            = "питомец принадлежит другому владельцу"
	msgServiceNotFound        = "услуга не найдена или неактивна"
	msgServiceWithoutDuration = "для услуги не задана длительность"
	msgStaffNotFound          = "специалист не найден"
	msgStaffNotQualified      = "специалист не оказывает эту услугу"
	msgStaffNotAvailable      = "специалист не работает в выбранное время"
	msgDoubleBooking          = "у специалиста уже есть запись на это время"
	msgSlotTaken              = "слот только что заняли, запросите свободные слоты заново"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user")
		handlers.RespondUnauthorized(w, msgMissingUser)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Владелец записи - текущий пользователь
	useCaseReq, err := req.ToUseCaseRequest(actor.ID)
	if err != nil {
		h.logger.Warn("POST /appointments - Invalid dateTime %q: %v", req.DateTime, err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrPetNotFound):
			h.logger.Warn("POST /appointments - Pet not found: pet_id=%s", req.PetID)
			handlers.RespondNotFound(w, msgPetNotFound)

		case errors.Is(err, createAppointment.ErrPetNotOwned):
			h.logger.Warn("POST /appointments - Pet not owned: pet_id=%s, user_id=%s", req.PetID, actor.ID)
			handlers.RespondForbidden(w, msgPetNotOwned)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service_id=%s", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrServiceWithoutDuration):
			h.logger.Warn("POST /appointments - Service without duration: service_id=%s", req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceWithoutDuration)

		case errors.Is(err, createAppointment.ErrStaffNotFound):
			h.logger.Warn("POST /appointments - Staff not found: staff_id=%s", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createAppointment.ErrStaffNotQualified):
			h.logger.Warn("POST /appointments - Staff not qualified: staff_id=%s, service_id=%s", req.StaffID, req.ServiceID)
			handlers.RespondBadRequest(w, msgStaffNotQualified)

		case errors.Is(err, createAppointment.ErrStaffNotAvailable):
			h.logger.Warn("POST /appointments - Staff not available: staff_id=%s, date_time=%s", req.StaffID, req.DateTime)
			handlers.RespondConflict(w, msgStaffNotAvailable)

		case errors.Is(err, createAppointment.ErrDoubleBooking):
			h.logger.Warn("POST /appointments - Double booking: staff_id=%s, date_time=%s", req.StaffID, req.DateTime)
			handlers.RespondConflict(w, msgDoubleBooking)

		case errors.Is(err, createAppointment.ErrSlotTaken):
			h.logger.Warn("POST /appointments - Slot taken concurrently: staff_id=%s, date_time=%s", req.StaffID, req.DateTime)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: user_id=%s, staff_id=%s, error=%v",
				actor.ID, req.StaffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%s, user_id=%s, staff_id=%s",
		result.ID, actor.ID, result.StaffID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
