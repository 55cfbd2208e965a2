package find_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/api/handlers"
	"github.com/m04kA/SMC-PetCareService/internal/domain"
	findSlots "github.com/m04kA/SMC-PetCareService/internal/usecase/find_available_slots"
)

const (
	msgInvalidServiceID  = "некорректный или отсутствующий serviceId"
	msgInvalidStaffID    = "некорректный staffId"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgServiceNotFound   = "услуга не найдена или недоступна для записи"
	msgStaffNotFound     = "специалист не найден"
	msgStaffNotQualified = "специалист не оказывает эту услугу"
)

type Handler struct {
	useCase  FindAvailableSlotsUseCase
	location *time.Location
	logger   Logger
}

// NewHandler создает handler; location задает часовой пояс, в котором читается дата запроса
func NewHandler(useCase FindAvailableSlotsUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.UTC
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/appointments/available-slots?serviceId=...&date=YYYY-MM-DD[&staffId=...]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	serviceID, err := uuid.Parse(query.Get("serviceId"))
	if err != nil {
		h.logger.Warn("GET /appointments/available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date, err := time.ParseInLocation(domain.DateFormat, query.Get("date"), h.location)
	if err != nil {
		h.logger.Warn("GET /appointments/available-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &findSlots.Request{
		ServiceID: serviceID,
		Date:      date,
	}

	if raw := query.Get("staffId"); raw != "" {
		staffID, err := uuid.Parse(raw)
		if err != nil {
			h.logger.Warn("GET /appointments/available-slots - Invalid staff ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStaffID)
			return
		}
		req.StaffID = &staffID
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, findSlots.ErrServiceNotFound):
			h.logger.Warn("GET /appointments/available-slots - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, findSlots.ErrStaffNotFound):
			h.logger.Warn("GET /appointments/available-slots - Staff not found: staff_id=%s", query.Get("staffId"))
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, findSlots.ErrStaffNotQualified):
			h.logger.Warn("GET /appointments/available-slots - Staff not qualified: staff_id=%s, service_id=%s",
				query.Get("staffId"), serviceID)
			handlers.RespondBadRequest(w, msgStaffNotQualified)

		case errors.Is(err, findSlots.ErrInvalidInput):
			h.logger.Warn("GET /appointments/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /appointments/available-slots - Failed to find slots: service_id=%s, date=%s, error=%v",
				serviceID, query.Get("date"), err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/available-slots - Found %d slots: service_id=%s, date=%s",
		len(result.Slots), serviceID, query.Get("date"))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
