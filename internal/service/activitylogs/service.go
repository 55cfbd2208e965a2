package activitylogs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	activitylogRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/activitylog"
	appointmentRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/appointment"
	daycareRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/daycare"
	"github.com/m04kA/SMC-PetCareService/internal/integrations/petregistry"
	"github.com/m04kA/SMC-PetCareService/internal/service/activitylogs/models"
)

// Service сервис журнала активностей питомцев
type Service struct {
	logRepo         ActivityLogRepository
	petRegistry     PetRegistry
	daycareRepo     DaycareRepository
	appointmentRepo AppointmentRepository
	logger          Logger
	now             func() time.Time
}

// NewService создает новый экземпляр сервиса журнала
func NewService(
	logRepo ActivityLogRepository,
	petRegistry PetRegistry,
	daycareRepo DaycareRepository,
	appointmentRepo AppointmentRepository,
	logger Logger,
) *Service {
	return &Service{
		logRepo:         logRepo,
		petRegistry:     petRegistry,
		daycareRepo:     daycareRepo,
		appointmentRepo: appointmentRepo,
		logger:          logger,
		now:             time.Now,
	}
}

// Create добавляет запись в журнал питомца
// Записи ведут специалисты и администраторы. Запись может ссылаться на одно
// бронирование дневного пребывания или одну запись на услугу этого же питомца.
func (s *Service) Create(ctx context.Context, req *models.CreateRequest) (*models.ActivityLogResponse, error) {
	s.logger.Info("Create: logging %s for pet=%s by user=%s (%s)", req.ActivityType, req.PetID, req.Actor.ID, req.Actor.Role)

	// 1. Журнал ведет только персонал
	if !req.Actor.Role.IsPrivileged() {
		s.logger.Warn("Create: user=%s (%s) cannot write activity logs", req.Actor.ID, req.Actor.Role)
		return nil, ErrAccessDenied
	}

	// 2. Валидация
	activityType, err := domain.ParseActivityType(req.ActivityType)
	if err != nil {
		s.logger.Warn("Create: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	details, err := validateDetails(req.Details)
	if err != nil {
		s.logger.Warn("Create: %v", err)
		return nil, err
	}
	if req.DaycareBookingID != nil && req.AppointmentID != nil {
		s.logger.Warn("Create: both daycare booking and appointment are set")
		return nil, fmt.Errorf("%w: link either a daycare booking or an appointment", ErrInvalidInput)
	}

	timestamp := s.now()
	if req.Timestamp != nil {
		if req.Timestamp.After(timestamp) {
			s.logger.Warn("Create: timestamp %s is in the future", req.Timestamp)
			return nil, fmt.Errorf("%w: timestamp must not be in the future", ErrInvalidInput)
		}
		timestamp = *req.Timestamp
	}

	// 3. Питомец из реестра определяет владельца записи
	pet, err := s.petRegistry.GetPet(ctx, req.PetID)
	if err != nil {
		if errors.Is(err, petregistry.ErrPetNotFound) {
			s.logger.Warn("Create: pet id=%s not found", req.PetID)
			return nil, ErrPetNotFound
		}
		s.logger.Error("Create: failed to get pet id=%s: %v", req.PetID, err)
		return nil, fmt.Errorf("%w: failed to get pet: %v", ErrInternal, err)
	}

	// 4. Связанное бронирование или запись должны относиться к этому питомцу
	if err := s.checkLinks(ctx, req, pet.ID); err != nil {
		return nil, err
	}

	// 5. Сохраняем
	created, err := s.logRepo.Create(ctx, &domain.ActivityLog{
		PetID:            pet.ID,
		OwnerID:          pet.OwnerID,
		StaffID:          req.Actor.ID,
		ActivityType:     activityType,
		Details:          details,
		DaycareBookingID: req.DaycareBookingID,
		AppointmentID:    req.AppointmentID,
		Timestamp:        timestamp,
	})
	if err != nil {
		if errors.Is(err, activitylogRepo.ErrReferenceNotFound) {
			s.logger.Warn("Create: referenced row disappeared: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		s.logger.Error("Create: repository error for pet=%s: %v", pet.ID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created activity log id=%s for pet=%s", created.ID, pet.ID)
	return models.FromDomainActivityLog(created), nil
}

// GetByID получает запись журнала
// Владелец видит только записи о своих питомцах
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, actor domain.Actor) (*models.ActivityLogResponse, error) {
	s.logger.Info("GetByID: fetching activity log id=%s for user=%s (%s)", id, actor.ID, actor.Role)

	log, err := s.getLog(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !actor.Role.IsPrivileged() && log.OwnerID != actor.ID {
		s.logger.Warn("GetByID: access denied for user=%s to activity log id=%s", actor.ID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainActivityLog(log), nil
}

// List получает журнал в области видимости пользователя, новые записи первыми
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.ActivityLogListResponse, error) {
	s.logger.Info("List: fetching activity logs for user=%s (%s), pet=%v", req.Actor.ID, req.Actor.Role, req.PetID)

	logs, err := s.logRepo.List(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("List: repository error for user=%s: %v", req.Actor.ID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d activity logs for user=%s", len(logs), req.Actor.ID)
	return models.FromDomainActivityLogList(logs), nil
}

// Update изменяет тип и описание записи журнала
// Специалист правит свои записи, администратор - любые
func (s *Service) Update(ctx context.Context, req *models.UpdateRequest) (*models.ActivityLogResponse, error) {
	s.logger.Info("Update: updating activity log id=%s by user=%s (%s)", req.ID, req.Actor.ID, req.Actor.Role)

	if !req.Actor.Role.IsPrivileged() {
		s.logger.Warn("Update: user=%s (%s) cannot edit activity logs", req.Actor.ID, req.Actor.Role)
		return nil, ErrAccessDenied
	}

	if req.IsEmpty() {
		s.logger.Warn("Update: nothing to update")
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	log, err := s.getLog(ctx, "Update", req.ID)
	if err != nil {
		return nil, err
	}

	if !req.Actor.IsAdmin() && log.StaffID != req.Actor.ID {
		s.logger.Warn("Update: user=%s is not the author of activity log id=%s", req.Actor.ID, req.ID)
		return nil, ErrAccessDenied
	}

	if req.ActivityType != nil {
		activityType, err := domain.ParseActivityType(*req.ActivityType)
		if err != nil {
			s.logger.Warn("Update: %v", err)
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		log.ActivityType = activityType
	}
	if req.Details != nil {
		details, err := validateDetails(*req.Details)
		if err != nil {
			s.logger.Warn("Update: %v", err)
			return nil, err
		}
		log.Details = details
	}

	updated, err := s.logRepo.Update(ctx, log)
	if err != nil {
		if errors.Is(err, activitylogRepo.ErrActivityLogNotFound) {
			return nil, ErrActivityLogNotFound
		}
		s.logger.Error("Update: repository error for activity log id=%s: %v", req.ID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated activity log id=%s", req.ID)
	return models.FromDomainActivityLog(updated), nil
}

// Delete удаляет запись журнала
// Доступно только администраторам
func (s *Service) Delete(ctx context.Context, id uuid.UUID, actor domain.Actor) error {
	s.logger.Info("Delete: deleting activity log id=%s by user=%s", id, actor.ID)

	if !actor.IsAdmin() {
		s.logger.Warn("Delete: user=%s (%s) is not an admin", actor.ID, actor.Role)
		return ErrAccessDenied
	}

	if err := s.logRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, activitylogRepo.ErrActivityLogNotFound) {
			s.logger.Warn("Delete: activity log id=%s not found", id)
			return ErrActivityLogNotFound
		}
		s.logger.Error("Delete: repository error for activity log id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted activity log id=%s", id)
	return nil
}

func (s *Service) checkLinks(ctx context.Context, req *models.CreateRequest, petID uuid.UUID) error {
	if req.DaycareBookingID != nil {
		booking, err := s.daycareRepo.GetBooking(ctx, *req.DaycareBookingID)
		if err != nil {
			if errors.Is(err, daycareRepo.ErrBookingNotFound) {
				s.logger.Warn("Create: daycare booking id=%s not found", *req.DaycareBookingID)
				return ErrBookingNotFound
			}
			s.logger.Error("Create: failed to get daycare booking id=%s: %v", *req.DaycareBookingID, err)
			return fmt.Errorf("%w: failed to get daycare booking: %v", ErrInternal, err)
		}
		if booking.PetID != petID {
			s.logger.Warn("Create: daycare booking id=%s belongs to pet=%s", booking.ID, booking.PetID)
			return ErrLinkMismatch
		}
	}

	if req.AppointmentID != nil {
		appointment, err := s.appointmentRepo.GetByID(ctx, *req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				s.logger.Warn("Create: appointment id=%s not found", *req.AppointmentID)
				return ErrAppointmentNotFound
			}
			s.logger.Error("Create: failed to get appointment id=%s: %v", *req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}
		if appointment.PetID != petID {
			s.logger.Warn("Create: appointment id=%s belongs to pet=%s", appointment.ID, appointment.PetID)
			return ErrLinkMismatch
		}
	}

	return nil
}

func (s *Service) getLog(ctx context.Context, op string, id uuid.UUID) (*domain.ActivityLog, error) {
	log, err := s.logRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, activitylogRepo.ErrActivityLogNotFound) {
			s.logger.Warn("%s: activity log id=%s not found", op, id)
			return nil, ErrActivityLogNotFound
		}
		s.logger.Error("%s: failed to get activity log id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: failed to get activity log: %v", ErrInternal, err)
	}
	return log, nil
}

func validateDetails(details string) (string, error) {
	details = strings.TrimSpace(details)
	if details == "" {
		return "", fmt.Errorf("%w: details are required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(details) > domain.MaxActivityDetailsLength {
		return "", fmt.Errorf("%w: details must be at most %d characters", ErrInvalidInput, domain.MaxActivityDetailsLength)
	}
	return details, nil
}
