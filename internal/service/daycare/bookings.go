package daycare

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	daycareRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/daycare"
	"github.com/m04kA/SMC-PetCareService/internal/service/daycare/models"
	"github.com/m04kA/SMC-PetCareService/pkg/txmanager"
)

// deletedStatus метка перехода для удаленного бронирования в метриках
const deletedStatus = "DELETED"

// GetBooking получает бронирование по ID
// Владелец видит только бронирования своих питомцев
func (s *Service) GetBooking(ctx context.Context, id uuid.UUID, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetBooking: fetching booking id=%s for user=%s", id, actor.ID)

	booking, err := s.getBooking(ctx, "GetBooking", id)
	if err != nil {
		return nil, err
	}

	if actor.IsOwner() && booking.OwnerID != actor.ID {
		s.logger.Warn("GetBooking: access denied for user=%s to booking id=%s", actor.ID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// ListBookings получает бронирования в области видимости пользователя, новые сначала
func (s *Service) ListBookings(ctx context.Context, actor domain.Actor) (*models.BookingListResponse, error) {
	s.logger.Info("ListBookings: fetching bookings for user=%s (%s)", actor.ID, actor.Role)

	bookings, err := s.daycareRepo.ListBookings(ctx, domain.ScopeFor(actor))
	if err != nil {
		s.logger.Error("ListBookings: repository error for user=%s: %v", actor.ID, err)
		return nil, fmt.Errorf("%w: ListBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBookings: successfully fetched %d bookings for user=%s", len(bookings), actor.ID)
	return models.FromDomainBookingList(bookings), nil
}

// DeleteBooking удаляет бронирование и освобождает место в смене
// Доступно владельцу (только свое бронирование в статусе BOOKED) и администратору
func (s *Service) DeleteBooking(ctx context.Context, id uuid.UUID, actor domain.Actor) error {
	s.logger.Info("DeleteBooking: deleting booking id=%s by user=%s (%s)", id, actor.ID, actor.Role)

	if !actor.IsOwner() && !actor.IsAdmin() {
		s.logger.Warn("DeleteBooking: role %s cannot delete bookings", actor.Role)
		return ErrAccessDenied
	}

	var from domain.DaycareBookingStatus

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "DeleteBooking", id)
		if err != nil {
			return err
		}
		from = booking.Status

		if actor.IsOwner() {
			if booking.OwnerID != actor.ID {
				s.logger.Warn("DeleteBooking: user=%s is not the owner of booking id=%s", actor.ID, id)
				return ErrAccessDenied
			}
			if booking.Status != domain.DaycareBooked {
				s.logger.Warn("DeleteBooking: booking id=%s is %s", id, booking.Status)
				return ErrBookingNotDeletable
			}
		}

		if err := s.daycareRepo.DeleteBooking(txCtx, id); err != nil {
			if errors.Is(err, daycareRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("DeleteBooking: repository error for booking id=%s: %v", id, err)
			return fmt.Errorf("%w: DeleteBooking - repository error: %w", ErrInternal, err)
		}

		if delta := domain.DaycareDeletionDelta(booking.Status); delta != 0 {
			session, err := s.daycareRepo.AdjustCurrentBookings(txCtx, booking.SessionID, delta)
			if err != nil {
				s.logger.Error("DeleteBooking: failed to adjust counter of session id=%s: %v", booking.SessionID, err)
				return fmt.Errorf("%w: DeleteBooking - adjust session counter: %w", ErrInternal, err)
			}
			s.logger.Info("DeleteBooking: session id=%s now has %d/%d bookings, status=%s",
				session.ID, session.CurrentBookings, session.TotalCapacity, session.Status)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			s.logger.Warn("DeleteBooking: serialization failure: %v", err)
			return ErrConcurrentUpdate
		}
		return err
	}

	s.metrics.DaycareTransition(string(from), deletedStatus)
	s.logger.Info("DeleteBooking: successfully deleted booking id=%s", id)
	return nil
}

func (s *Service) getBooking(ctx context.Context, op string, id uuid.UUID) (*domain.DaycareBooking, error) {
	booking, err := s.daycareRepo.GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, daycareRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return booking, nil
}
