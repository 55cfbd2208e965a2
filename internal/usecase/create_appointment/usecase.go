package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/infra/lock"
	appointmentRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/appointment"
	availabilityRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/availability"
	catalogRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-PetCareService/internal/integrations/petregistry"
	"github.com/m04kA/SMC-PetCareService/pkg/txmanager"
)

// UseCase use case для создания записи на услугу
type UseCase struct {
	appointmentRepo  AppointmentRepository
	availabilityRepo AvailabilityRepository
	catalogRepo      CatalogRepository
	petRegistry      PetRegistryClient
	txManager        TransactionManager
	locker           Locker
	lockTTL          time.Duration
	location         *time.Location
	metrics          MetricsRecorder
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	availabilityRepo AvailabilityRepository,
	catalogRepo CatalogRepository,
	petRegistry PetRegistryClient,
	txManager TransactionManager,
	locker Locker,
	lockTTL time.Duration,
	location *time.Location,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}

	return &UseCase{
		appointmentRepo:  appointmentRepo,
		availabilityRepo: availabilityRepo,
		catalogRepo:      catalogRepo,
		petRegistry:      petRegistry,
		txManager:        txManager,
		locker:           locker,
		lockTTL:          lockTTL,
		location:         location,
		metrics:          metrics,
		logger:           logger,
	}
}

// Execute выполняет use case создания записи
// Проверка доступности специалиста, проверка пересечений и вставка выполняются
// в одной сериализуемой транзакции под блокировкой расписания специалиста на день.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: owner=%s, pet=%s, service=%s, staff=%s, start=%s",
		req.OwnerID, req.PetID, req.ServiceID, req.StaffID, req.StartTime.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Питомец должен существовать и принадлежать пользователю
	pet, err := uc.petRegistry.GetPet(ctx, req.PetID)
	if err != nil {
		if errors.Is(err, petregistry.ErrPetNotFound) {
			uc.logger.Warn("CreateAppointment: pet id=%s not found", req.PetID)
			return nil, ErrPetNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get pet id=%s: %v", req.PetID, err)
		return nil, fmt.Errorf("%w: failed to get pet: %v", ErrInternal, err)
	}
	if pet.OwnerID != req.OwnerID {
		uc.logger.Warn("CreateAppointment: pet id=%s belongs to user id=%s", pet.ID, pet.OwnerID)
		return nil, ErrPetNotOwned
	}

	// 3. Услуга должна существовать, быть активной и иметь длительность
	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("CreateAppointment: service id=%s is inactive", req.ServiceID)
		return nil, ErrServiceNotFound
	}
	duration, ok := service.Duration()
	if !ok {
		uc.logger.Warn("CreateAppointment: service id=%s has no duration", req.ServiceID)
		return nil, ErrServiceWithoutDuration
	}

	// 4. Специалист должен существовать и иметь роль специалиста
	staff, err := uc.catalogRepo.GetStaff(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			uc.logger.Warn("CreateAppointment: staff id=%s not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get staff id=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.CanPerformServices() {
		uc.logger.Warn("CreateAppointment: user id=%s has role %s", staff.ID, staff.Role)
		return nil, ErrStaffNotFound
	}

	// 5. Специалист должен быть квалифицирован для услуги
	qualified, err := uc.catalogRepo.IsQualified(ctx, req.StaffID, req.ServiceID)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to check qualification: %v", err)
		return nil, fmt.Errorf("%w: failed to check qualification: %v", ErrInternal, err)
	}
	if !qualified {
		uc.logger.Warn("CreateAppointment: staff id=%s is not qualified for service id=%s", req.StaffID, req.ServiceID)
		return nil, ErrStaffNotQualified
	}

	slot := domain.NewInterval(req.StartTime, duration)

	// 6. Блокируем расписание специалиста на все дни, которые задевает интервал
	keys := lock.StaffDayKeys(req.StaffID, slot.Start, slot.End, uc.location)
	held, locked, err := lock.LockAll(ctx, uc.locker, keys, uc.lockTTL)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to acquire locks %v: %v", keys, err)
		return nil, fmt.Errorf("%w: failed to acquire lock: %v", ErrInternal, err)
	}
	if !locked {
		uc.logger.Warn("CreateAppointment: locks %v are busy", keys)
		uc.metrics.BookingRejected(reasonConcurrent)
		return nil, ErrSlotTaken
	}
	defer func() {
		if err := held.Release(context.WithoutCancel(ctx)); err != nil {
			uc.logger.Warn("CreateAppointment: failed to release locks: %v", err)
		}
	}()

	var result *domain.Appointment

	// 7. Проверка доступности и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Интервал должен целиком лежать в одном блоке доступности
		if _, err := uc.availabilityRepo.FindCovering(txCtx, req.StaffID, slot.Start, slot.End); err != nil {
			if errors.Is(err, availabilityRepo.ErrBlockNotFound) {
				uc.logger.Warn("CreateAppointment: staff id=%s has no availability for %s-%s",
					req.StaffID, slot.Start.Format(time.RFC3339), slot.End.Format(time.RFC3339))
				uc.metrics.BookingRejected(reasonNotAvailable)
				return ErrStaffNotAvailable
			}
			uc.logger.Error("CreateAppointment: failed to find availability: %v", err)
			return fmt.Errorf("%w: failed to find availability: %w", ErrInternal, err)
		}

		// 7.2. Интервал не должен пересекаться с активными записями специалиста (FOR UPDATE)
		overlapping, err := uc.appointmentRepo.List(txCtx, domain.AppointmentFilter{
			Scope:   domain.AllRecords(),
			StaffID: &req.StaffID,
			From:    &slot.Start,
			To:      &slot.End,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("CreateAppointment: staff id=%s is busy, conflicting appointment id=%s",
				req.StaffID, overlapping[0].ID)
			uc.metrics.BookingRejected(reasonDoubleBooking)
			return ErrDoubleBooking
		}

		// 7.3. Создаем запись со статусом SCHEDULED
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			OwnerID:         req.OwnerID,
			PetID:           req.PetID,
			ServiceID:       req.ServiceID,
			StaffID:         req.StaffID,
			DateTime:        slot.Start,
			DurationMinutes: int(duration / time.Minute),
			Status:          domain.AppointmentScheduled,
			Notes:           req.Notes,
		})
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("CreateAppointment: storage rejected overlapping slot: %v", err)
				uc.metrics.BookingRejected(reasonConcurrent)
				return ErrSlotTaken
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("CreateAppointment: serialization failure: %v", err)
			uc.metrics.BookingRejected(reasonConcurrent)
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	uc.metrics.AppointmentCreated()
	uc.logger.Info("CreateAppointment: successfully created appointment id=%s", result.ID)

	return toResponse(result), nil
}

func toResponse(a *domain.Appointment) *Response {
	return &Response{
		ID:              a.ID,
		OwnerID:         a.OwnerID,
		PetID:           a.PetID,
		ServiceID:       a.ServiceID,
		StaffID:         a.StaffID,
		DateTime:        a.DateTime,
		EndTime:         a.EndTime(),
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
