package update_daycare_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	daycareRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/daycare"
	"github.com/m04kA/SMC-PetCareService/pkg/txmanager"
)

// UseCase use case для изменения статуса и комнаты бронирования дневного пребывания
// Счетчик смены изменяется в той же транзакции, что и статус бронирования.
type UseCase struct {
	daycareRepo DaycareRepository
	txManager   TransactionManager
	metrics     MetricsRecorder
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	daycareRepo DaycareRepository,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		daycareRepo: daycareRepo,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет use case изменения бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateDaycareBooking: actor=%s (%s), booking=%s", req.Actor.ID, req.Actor.Role, req.BookingID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateDaycareBooking: validation failed: %v", err)
		return nil, err
	}

	var (
		result *domain.DaycareBooking
		from   domain.DaycareBookingStatus
	)

	// 2. Изменение бронирования и счетчика смены в одной транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем бронирование с блокировкой строки
		booking, err := uc.daycareRepo.GetBooking(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, daycareRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateDaycareBooking: booking id=%s not found", req.BookingID)
				return ErrBookingNotFound
			}
			uc.logger.Error("UpdateDaycareBooking: failed to get booking id=%s: %v", req.BookingID, err)
			return fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}
		from = booking.Status

		to := booking.Status
		if req.Status != nil {
			to = domain.DaycareBookingStatus(*req.Status)
		}

		// 2.2. Владелец может отменить только свое бронирование в статусе BOOKED
		if req.Actor.IsOwner() {
			if booking.OwnerID != req.Actor.ID {
				uc.logger.Warn("UpdateDaycareBooking: user id=%s has no access to booking id=%s", req.Actor.ID, booking.ID)
				return ErrAccessDenied
			}
			if from != to && from != domain.DaycareBooked {
				uc.logger.Warn("UpdateDaycareBooking: owner cannot cancel booking id=%s in status %s", booking.ID, from)
				return ErrOwnerCancelNotAllowed
			}
		}

		// 2.3. Изменение счетчика по таблице переходов
		delta, err := domain.DaycareCounterDelta(from, to)
		if err != nil {
			uc.logger.Warn("UpdateDaycareBooking: %v", err)
			return err
		}

		// 2.4. Восстановление бронирования занимает место: смена должна его иметь, дубликатов быть не должно
		if delta > 0 {
			if err := uc.checkSeat(txCtx, booking); err != nil {
				return err
			}
		}

		// 2.5. Комната, если указана, должна существовать
		if req.RoomID != nil {
			if _, err := uc.daycareRepo.GetRoom(txCtx, *req.RoomID); err != nil {
				if errors.Is(err, daycareRepo.ErrRoomNotFound) {
					uc.logger.Warn("UpdateDaycareBooking: room id=%s not found", *req.RoomID)
					return ErrRoomNotFound
				}
				uc.logger.Error("UpdateDaycareBooking: failed to get room id=%s: %v", *req.RoomID, err)
				return fmt.Errorf("%w: failed to get room: %w", ErrInternal, err)
			}
			booking.RoomID = req.RoomID
		}

		// 2.6. Сохраняем бронирование и корректируем счетчик
		booking.Status = to
		updated, err := uc.daycareRepo.UpdateBooking(txCtx, booking)
		if err != nil {
			if errors.Is(err, daycareRepo.ErrPetAlreadyBooked) {
				return ErrAlreadyBooked
			}
			uc.logger.Error("UpdateDaycareBooking: failed to update booking id=%s: %v", booking.ID, err)
			return fmt.Errorf("%w: failed to update booking: %w", ErrInternal, err)
		}

		if delta != 0 {
			session, err := uc.daycareRepo.AdjustCurrentBookings(txCtx, booking.SessionID, delta)
			if err != nil {
				if errors.Is(err, daycareRepo.ErrCapacityExceeded) {
					uc.logger.Warn("UpdateDaycareBooking: session id=%s has no free seats", booking.SessionID)
					return ErrSessionUnavailable
				}
				uc.logger.Error("UpdateDaycareBooking: failed to adjust session counter: %v", err)
				return fmt.Errorf("%w: failed to adjust session counter: %w", ErrInternal, err)
			}
			uc.logger.Info("UpdateDaycareBooking: session id=%s now has %d/%d bookings, status=%s",
				session.ID, session.CurrentBookings, session.TotalCapacity, session.Status)
		}

		result = updated
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("UpdateDaycareBooking: serialization failure: %v", err)
			return nil, ErrConcurrentUpdate
		}
		return nil, err
	}

	if from != result.Status {
		uc.metrics.DaycareTransition(string(from), string(result.Status))
	}
	uc.logger.Info("UpdateDaycareBooking: booking id=%s updated, %s -> %s", result.ID, from, result.Status)

	return &Response{
		ID:        result.ID,
		SessionID: result.SessionID,
		PetID:     result.PetID,
		OwnerID:   result.OwnerID,
		RoomID:    result.RoomID,
		Status:    string(result.Status),
		CreatedAt: result.CreatedAt,
		UpdatedAt: result.UpdatedAt,
	}, nil
}

// checkSeat проверяет, что смена принимает бронирования и у питомца нет другого активного бронирования
func (uc *UseCase) checkSeat(ctx context.Context, booking *domain.DaycareBooking) error {
	session, err := uc.daycareRepo.GetSession(ctx, booking.SessionID)
	if err != nil {
		uc.logger.Error("UpdateDaycareBooking: failed to get session id=%s: %v", booking.SessionID, err)
		return fmt.Errorf("%w: failed to get session: %w", ErrInternal, err)
	}
	if !session.IsBookable() {
		uc.logger.Warn("UpdateDaycareBooking: session id=%s is %s with %d/%d bookings",
			session.ID, session.Status, session.CurrentBookings, session.TotalCapacity)
		return ErrSessionUnavailable
	}

	existing, err := uc.daycareRepo.FindActiveBooking(ctx, booking.PetID, booking.SessionID)
	if err != nil && !errors.Is(err, daycareRepo.ErrBookingNotFound) {
		uc.logger.Error("UpdateDaycareBooking: failed to check existing bookings: %v", err)
		return fmt.Errorf("%w: failed to check existing bookings: %w", ErrInternal, err)
	}
	if existing != nil && existing.ID != booking.ID {
		uc.logger.Warn("UpdateDaycareBooking: pet id=%s already has booking id=%s", booking.PetID, existing.ID)
		return ErrAlreadyBooked
	}

	return nil
}
