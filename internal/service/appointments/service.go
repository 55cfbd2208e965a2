package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-PetCareService/internal/service/appointments/models"
)

// Service сервис для чтения и отмены записей на услуги
type Service struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Владелец видит только свои записи, специалист - назначенные ему, администратор - все
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, actor domain.Actor) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s for user=%s (%s)", id, actor.ID, actor.Role)

	appointment, err := s.getAppointment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !canView(appointment, actor) {
		s.logger.Warn("GetByID: access denied for user=%s to appointment id=%s", actor.ID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%s", id)
	return models.FromDomainAppointment(appointment), nil
}

// List получает записи в области видимости пользователя
// Специалисты и администраторы видят все записи, владельцы - только свои
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching appointments for user=%s (%s), status=%v", req.Actor.ID, req.Actor.Role, req.Status)

	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		s.logger.Warn("List: invalid period from=%s to=%s", req.From, req.To)
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	appointments, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for user=%s: %v", req.Actor.ID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d appointments for user=%s", len(appointments), req.Actor.ID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel переводит запись в статус CANCELLED
// Отменить может владелец записи, администратор или любой специалист.
// Повторная отмена ничего не меняет, завершенную запись отменить нельзя.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, actor domain.Actor) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%s by user=%s (%s)", id, actor.ID, actor.Role)

	var result *domain.Appointment

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		appointment, err := s.getAppointment(txCtx, "Cancel", id)
		if err != nil {
			return err
		}

		if actor.IsOwner() && appointment.OwnerID != actor.ID {
			s.logger.Warn("Cancel: user=%s is not the owner of appointment id=%s", actor.ID, id)
			return ErrAccessDenied
		}

		changed, err := domain.CheckAppointmentTransition(actor.Role, appointment.Status, domain.AppointmentCancelled)
		if err != nil {
			s.logger.Warn("Cancel: appointment id=%s in status %s cannot be cancelled", id, appointment.Status)
			return fmt.Errorf("%w: status %s", ErrCannotCancel, appointment.Status)
		}

		if changed {
			if err := s.appointmentRepo.UpdateStatus(txCtx, id, domain.AppointmentCancelled); err != nil {
				s.logger.Error("Cancel: failed to update status of appointment id=%s: %v", id, err)
				return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
			}
			appointment.Status = domain.AppointmentCancelled
		}

		result = appointment
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Cancel: appointment id=%s is cancelled", id)
	return models.FromDomainAppointment(result), nil
}

func (s *Service) getAppointment(ctx context.Context, op string, id uuid.UUID) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%s not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return appointment, nil
}

// canView проверяет права на просмотр записи
func canView(appointment *domain.Appointment, actor domain.Actor) bool {
	switch {
	case actor.IsAdmin():
		return true
	case actor.Role.IsStaff():
		return appointment.StaffID == actor.ID
	default:
		return appointment.OwnerID == actor.ID
	}
}
