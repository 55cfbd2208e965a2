package book_daycare_session

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	daycareRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/daycare"
	"github.com/m04kA/SMC-PetCareService/internal/integrations/petregistry"
	"github.com/m04kA/SMC-PetCareService/pkg/txmanager"
)

// UseCase use case для бронирования места на смене дневного пребывания
type UseCase struct {
	daycareRepo DaycareRepository
	petRegistry PetRegistryClient
	txManager   TransactionManager
	metrics     MetricsRecorder
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	daycareRepo DaycareRepository,
	petRegistry PetRegistryClient,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		daycareRepo: daycareRepo,
		petRegistry: petRegistry,
		txManager:   txManager,
		metrics:     metrics,
		logger:      logger,
	}
}

// Execute выполняет use case бронирования
// Проверка смены, проверка дубликата, создание бронирования и увеличение счетчика
// выполняются в одной транзакции: либо применяются все изменения, либо ни одно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookDaycareSession: actor=%s (%s), session=%s, pet=%s",
		req.Actor.ID, req.Actor.Role, req.SessionID, req.PetID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookDaycareSession: validation failed: %v", err)
		return nil, err
	}

	// 2. Питомец должен существовать; владелец может бронировать только своего питомца
	pet, err := uc.petRegistry.GetPet(ctx, req.PetID)
	if err != nil {
		if errors.Is(err, petregistry.ErrPetNotFound) {
			uc.logger.Warn("BookDaycareSession: pet id=%s not found", req.PetID)
			return nil, ErrPetNotFound
		}
		uc.logger.Error("BookDaycareSession: failed to get pet id=%s: %v", req.PetID, err)
		return nil, fmt.Errorf("%w: failed to get pet: %v", ErrInternal, err)
	}
	if req.Actor.IsOwner() && pet.OwnerID != req.Actor.ID {
		uc.logger.Warn("BookDaycareSession: pet id=%s belongs to user id=%s", pet.ID, pet.OwnerID)
		return nil, ErrPetNotOwned
	}

	// 3. Комната, если указана, должна существовать
	if req.RoomID != nil {
		if _, err := uc.daycareRepo.GetRoom(ctx, *req.RoomID); err != nil {
			if errors.Is(err, daycareRepo.ErrRoomNotFound) {
				uc.logger.Warn("BookDaycareSession: room id=%s not found", *req.RoomID)
				return nil, ErrRoomNotFound
			}
			uc.logger.Error("BookDaycareSession: failed to get room id=%s: %v", *req.RoomID, err)
			return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
		}
	}

	var result *domain.DaycareBooking

	// 4. Бронирование и счетчик смены в одной транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Смена блокируется (FOR UPDATE) и должна принимать бронирования
		session, err := uc.daycareRepo.GetSession(txCtx, req.SessionID)
		if err != nil {
			if errors.Is(err, daycareRepo.ErrSessionNotFound) {
				uc.logger.Warn("BookDaycareSession: session id=%s not found", req.SessionID)
				return ErrSessionNotFound
			}
			uc.logger.Error("BookDaycareSession: failed to get session id=%s: %v", req.SessionID, err)
			return fmt.Errorf("%w: failed to get session: %w", ErrInternal, err)
		}
		if !session.IsBookable() {
			uc.logger.Warn("BookDaycareSession: session id=%s is %s with %d/%d bookings",
				session.ID, session.Status, session.CurrentBookings, session.TotalCapacity)
			uc.metrics.BookingRejected(reasonSessionFull)
			return ErrSessionUnavailable
		}

		// 4.2. У питомца не должно быть активного бронирования на эту смену
		existing, err := uc.daycareRepo.FindActiveBooking(txCtx, req.PetID, req.SessionID)
		if err != nil && !errors.Is(err, daycareRepo.ErrBookingNotFound) {
			uc.logger.Error("BookDaycareSession: failed to check existing bookings: %v", err)
			return fmt.Errorf("%w: failed to check existing bookings: %w", ErrInternal, err)
		}
		if existing != nil {
			uc.logger.Warn("BookDaycareSession: pet id=%s already has booking id=%s", req.PetID, existing.ID)
			return ErrAlreadyBooked
		}

		// 4.3. Создаем бронирование со статусом BOOKED
		booking, err := uc.daycareRepo.CreateBooking(txCtx, &domain.DaycareBooking{
			SessionID: req.SessionID,
			PetID:     req.PetID,
			OwnerID:   pet.OwnerID,
			RoomID:    req.RoomID,
			Status:    domain.DaycareBooked,
		})
		if err != nil {
			if errors.Is(err, daycareRepo.ErrPetAlreadyBooked) {
				return ErrAlreadyBooked
			}
			uc.logger.Error("BookDaycareSession: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		// 4.4. Увеличиваем счетчик ровно на 1
		if _, err := uc.daycareRepo.AdjustCurrentBookings(txCtx, req.SessionID, 1); err != nil {
			if errors.Is(err, daycareRepo.ErrCapacityExceeded) {
				uc.metrics.BookingRejected(reasonSessionFull)
				return ErrSessionUnavailable
			}
			uc.logger.Error("BookDaycareSession: failed to increment session counter: %v", err)
			return fmt.Errorf("%w: failed to increment session counter: %w", ErrInternal, err)
		}

		result = booking
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("BookDaycareSession: serialization failure: %v", err)
			return nil, ErrConcurrentUpdate
		}
		return nil, err
	}

	uc.metrics.DaycareTransition("", string(domain.DaycareBooked))
	uc.logger.Info("BookDaycareSession: successfully created booking id=%s", result.ID)

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
