package daycare

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	daycareRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/daycare"
	"github.com/m04kA/SMC-PetCareService/internal/service/daycare/models"
)

// Service сервис управления сменами дневного пребывания и чтения бронирований
type Service struct {
	daycareRepo DaycareRepository
	txManager   TransactionManager
	metrics     MetricsRecorder
	logger      Logger
}

// NewService создает новый экземпляр сервиса дневного пребывания
func NewService(
	daycareRepo DaycareRepository,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *Service {
	return &Service{
		daycareRepo: daycareRepo,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// CreateSession создает смену
// Доступно только администраторам. На одну дату может быть только одна смена.
func (s *Service) CreateSession(ctx context.Context, req *models.CreateSessionRequest) (*models.SessionResponse, error) {
	s.logger.Info("CreateSession: creating session date=%s, capacity=%d by user=%s",
		req.Date.Format(domain.DateFormat), req.TotalCapacity, req.Actor.ID)

	if !req.Actor.IsAdmin() {
		s.logger.Warn("CreateSession: user=%s (%s) is not an admin", req.Actor.ID, req.Actor.Role)
		return nil, ErrAccessDenied
	}

	if err := validateSession(req.Date.IsZero(), req.TotalCapacity, req.Price, req.Status); err != nil {
		s.logger.Warn("CreateSession: validation failed: %v", err)
		return nil, err
	}

	session := &domain.DaycareSession{
		Date:          req.Date,
		TotalCapacity: req.TotalCapacity,
		Price:         req.Price,
		Status:        domain.SessionAvailable,
	}
	if req.Status != nil && domain.DaycareSessionStatus(*req.Status) == domain.SessionClosed {
		session.Status = domain.SessionClosed
	}

	created, err := s.daycareRepo.CreateSession(ctx, session)
	if err != nil {
		if errors.Is(err, daycareRepo.ErrSessionDateTaken) {
			s.logger.Warn("CreateSession: session for date=%s already exists", req.Date.Format(domain.DateFormat))
			return nil, ErrSessionDateTaken
		}
		s.logger.Error("CreateSession: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateSession - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateSession: successfully created session id=%s", created.ID)
	return models.FromDomainSession(created), nil
}

// GetSession получает смену по ID
// Владельцы видят только смены, открытые для бронирования
func (s *Service) GetSession(ctx context.Context, id uuid.UUID, actor domain.Actor) (*models.SessionResponse, error) {
	s.logger.Info("GetSession: fetching session id=%s for user=%s", id, actor.ID)

	session, err := s.getSession(ctx, "GetSession", id)
	if err != nil {
		return nil, err
	}

	if actor.IsOwner() && !session.IsBookable() {
		s.logger.Warn("GetSession: session id=%s is %s and hidden from owners", id, session.Status)
		return nil, ErrSessionNotFound
	}

	return models.FromDomainSession(session), nil
}

// ListSessions получает смены по дате
// Владельцы видят только смены, которые не закрыты и не заполнены
func (s *Service) ListSessions(ctx context.Context, actor domain.Actor) (*models.SessionListResponse, error) {
	s.logger.Info("ListSessions: fetching sessions for user=%s (%s)", actor.ID, actor.Role)

	sessions, err := s.daycareRepo.ListSessions(ctx, actor.IsOwner())
	if err != nil {
		s.logger.Error("ListSessions: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListSessions - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListSessions: successfully fetched %d sessions", len(sessions))
	return models.FromDomainSessionList(sessions), nil
}

// UpdateSession изменяет дату, вместимость, цену или статус смены
// Доступно только администраторам
func (s *Service) UpdateSession(ctx context.Context, req *models.UpdateSessionRequest) (*models.SessionResponse, error) {
	s.logger.Info("UpdateSession: updating session id=%s by user=%s", req.SessionID, req.Actor.ID)

	// 1. Проверяем права доступа
	if !req.Actor.IsAdmin() {
		s.logger.Warn("UpdateSession: user=%s (%s) is not an admin", req.Actor.ID, req.Actor.Role)
		return nil, ErrAccessDenied
	}

	if req.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	var result *domain.DaycareSession

	// 2. Смена блокируется, чтобы вместимость сравнивалась с актуальным счетчиком
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		session, err := s.getSession(txCtx, "UpdateSession", req.SessionID)
		if err != nil {
			return err
		}

		// 3. Применяем изменения к копии и валидируем результат
		updated := *session
		req.ApplyToSession(&updated)

		if err := validateSession(updated.Date.IsZero(), updated.TotalCapacity, updated.Price, req.Status); err != nil {
			s.logger.Warn("UpdateSession: validation failed for session id=%s: %v", req.SessionID, err)
			return err
		}
		if updated.TotalCapacity < updated.CurrentBookings {
			s.logger.Warn("UpdateSession: capacity=%d is below current bookings=%d",
				updated.TotalCapacity, updated.CurrentBookings)
			return ErrCapacityBelowBookings
		}

		// 4. Сохраняем смену
		result, err = s.daycareRepo.UpdateSession(txCtx, &updated)
		if err != nil {
			switch {
			case errors.Is(err, daycareRepo.ErrSessionDateTaken):
				s.logger.Warn("UpdateSession: session for date=%s already exists", updated.Date.Format(domain.DateFormat))
				return ErrSessionDateTaken
			case errors.Is(err, daycareRepo.ErrCapacityExceeded):
				return ErrCapacityBelowBookings
			case errors.Is(err, daycareRepo.ErrSessionNotFound):
				return ErrSessionNotFound
			}
			s.logger.Error("UpdateSession: repository error for session id=%s: %v", req.SessionID, err)
			return fmt.Errorf("%w: UpdateSession - repository error: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateSession: successfully updated session id=%s, status=%s", result.ID, result.Status)
	return models.FromDomainSession(result), nil
}

// DeleteSession удаляет смену без бронирований
// Доступно только администраторам
func (s *Service) DeleteSession(ctx context.Context, id uuid.UUID, actor domain.Actor) error {
	s.logger.Info("DeleteSession: deleting session id=%s by user=%s", id, actor.ID)

	if !actor.IsAdmin() {
		s.logger.Warn("DeleteSession: user=%s (%s) is not an admin", actor.ID, actor.Role)
		return ErrAccessDenied
	}

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		if _, err := s.getSession(txCtx, "DeleteSession", id); err != nil {
			return err
		}

		count, err := s.daycareRepo.CountBookingsBySession(txCtx, id)
		if err != nil {
			s.logger.Error("DeleteSession: failed to count bookings of session id=%s: %v", id, err)
			return fmt.Errorf("%w: DeleteSession - repository error: %w", ErrInternal, err)
		}
		if count > 0 {
			s.logger.Warn("DeleteSession: session id=%s has %d bookings", id, count)
			return ErrSessionHasBookings
		}

		if err := s.daycareRepo.DeleteSession(txCtx, id); err != nil {
			if errors.Is(err, daycareRepo.ErrSessionNotFound) {
				return ErrSessionNotFound
			}
			s.logger.Error("DeleteSession: repository error for session id=%s: %v", id, err)
			return fmt.Errorf("%w: DeleteSession - repository error: %w", ErrInternal, err)
		}

		s.logger.Info("DeleteSession: successfully deleted session id=%s", id)
		return nil
	})
}

func (s *Service) getSession(ctx context.Context, op string, id uuid.UUID) (*domain.DaycareSession, error) {
	session, err := s.daycareRepo.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, daycareRepo.ErrSessionNotFound) {
			s.logger.Warn("%s: session id=%s not found", op, id)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("%s: repository error for session id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return session, nil
}

// validateSession валидирует параметры смены
func validateSession(dateMissing bool, capacity int, price float64, status *string) error {
	if dateMissing {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if capacity < domain.MinSessionCapacity {
		return fmt.Errorf("%w: totalCapacity must be at least %d", ErrInvalidInput, domain.MinSessionCapacity)
	}
	if price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}
	if status != nil && !domain.DaycareSessionStatus(*status).IsValid() {
		return fmt.Errorf("%w: unknown session status %q", ErrInvalidInput, *status)
	}
	return nil
}
