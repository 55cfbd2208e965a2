package update_appointment

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
	"github.com/m04kA/SMC-PetCareService/pkg/txmanager"
)

// UseCase use case для изменения записи: заметки, статус, перенос и смена специалиста
// Перенос и смена статуса независимы и могут выполняться одним запросом.
type UseCase struct {
	appointmentRepo  AppointmentRepository
	availabilityRepo AvailabilityRepository
	catalogRepo      CatalogRepository
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
		txManager:        txManager,
		locker:           locker,
		lockTTL:          lockTTL,
		location:         location,
		metrics:          metrics,
		logger:           logger,
	}
}

// Execute выполняет use case изменения записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointment: actor=%s (%s), appointment=%s", req.Actor.ID, req.Actor.Role, req.AppointmentID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем запись и проверяем доступ
	current, err := uc.getAppointment(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := checkAccess(req.Actor, current); err != nil {
		uc.logger.Warn("UpdateAppointment: user id=%s has no access to appointment id=%s", req.Actor.ID, current.ID)
		return nil, err
	}

	// 3. Проверяем, что роль может менять запрошенные поля
	if err := validateFieldsForRole(req.Actor, req); err != nil {
		uc.logger.Warn("UpdateAppointment: %v", err)
		return nil, err
	}

	// 4. Для переноса проверяем услугу и нового специалиста,
	// затем блокируем расписание специалиста на все дни нового интервала
	if req.reschedules() {
		target, err := uc.applyChanges(current, req)
		if err != nil {
			return nil, err
		}

		if err := uc.validateService(ctx, target); err != nil {
			return nil, err
		}

		if err := uc.validateStaff(ctx, target); err != nil {
			return nil, err
		}

		slot := target.Interval()
		keys := lock.StaffDayKeys(target.StaffID, slot.Start, slot.End, uc.location)
		held, locked, err := lock.LockAll(ctx, uc.locker, keys, uc.lockTTL)
		if err != nil {
			uc.logger.Error("UpdateAppointment: failed to acquire locks %v: %v", keys, err)
			return nil, fmt.Errorf("%w: failed to acquire lock: %v", ErrInternal, err)
		}
		if !locked {
			uc.logger.Warn("UpdateAppointment: locks %v are busy", keys)
			uc.metrics.BookingRejected(reasonConcurrent)
			return nil, ErrSlotTaken
		}
		defer func() {
			if err := held.Release(context.WithoutCancel(ctx)); err != nil {
				uc.logger.Warn("UpdateAppointment: failed to release locks: %v", err)
			}
		}()
	}

	var result *domain.Appointment

	// 5. Перечитываем запись под блокировкой строки, применяем изменения и сохраняем
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		fresh, err := uc.getAppointment(txCtx, req)
		if err != nil {
			return err
		}

		target, err := uc.applyChanges(fresh, req)
		if err != nil {
			return err
		}

		if req.reschedules() && target.IsActive() {
			if err := uc.checkSlot(txCtx, target); err != nil {
				return err
			}
		}

		updated, err := uc.appointmentRepo.Update(txCtx, target)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("UpdateAppointment: storage rejected overlapping slot: %v", err)
				uc.metrics.BookingRejected(reasonConcurrent)
				return ErrSlotTaken
			}
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to update appointment id=%s: %v", target.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %w", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrSerialization) {
			uc.logger.Warn("UpdateAppointment: serialization failure: %v", err)
			uc.metrics.BookingRejected(reasonConcurrent)
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	uc.logger.Info("UpdateAppointment: appointment id=%s updated, status=%s, start=%s, staff=%s",
		result.ID, result.Status, result.DateTime.Format(time.RFC3339), result.StaffID)

	return toResponse(result), nil
}

func (uc *UseCase) getAppointment(ctx context.Context, req *Request) (*domain.Appointment, error) {
	appointment, err := uc.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("UpdateAppointment: appointment id=%s not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("UpdateAppointment: failed to get appointment id=%s: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
	}
	return appointment, nil
}

// applyChanges возвращает копию записи с примененными изменениями запроса
func (uc *UseCase) applyChanges(current *domain.Appointment, req *Request) (*domain.Appointment, error) {
	target := *current

	if req.Notes != nil {
		target.Notes = req.Notes
	}

	if req.Status != nil {
		status, err := domain.ParseAppointmentStatus(*req.Status)
		if err != nil {
			return nil, err
		}

		changed, err := domain.CheckAppointmentTransition(req.Actor.Role, current.Status, status)
		if err != nil {
			uc.logger.Warn("UpdateAppointment: transition %s -> %s rejected: %v", current.Status, status, err)
			return nil, err
		}
		if changed {
			target.Status = status
		}
	}

	if req.reschedules() {
		// Завершенную или отмененную запись перенести нельзя
		if current.Status.IsTerminal() {
			uc.logger.Warn("UpdateAppointment: appointment id=%s is %s and cannot be moved", current.ID, current.Status)
			return nil, fmt.Errorf("%w: cannot move appointment in status %s", domain.ErrAppointmentTerminal, current.Status)
		}

		if req.StaffID != nil {
			target.StaffID = *req.StaffID
		}

		if req.NewDate != nil || req.NewTime != nil {
			start, err := newStartTime(current.DateTime, req.NewDate, req.NewTime, uc.location)
			if err != nil {
				return nil, err
			}
			target.DateTime = start
		}
	}

	return &target, nil
}

// validateService проверяет, что услуга записи все еще активна и имеет длительность.
// Длительность записи при переносе не меняется.
func (uc *UseCase) validateService(ctx context.Context, target *domain.Appointment) error {
	service, err := uc.catalogRepo.GetService(ctx, target.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("UpdateAppointment: service id=%s not found", target.ServiceID)
			return ErrServiceNotFound
		}
		uc.logger.Error("UpdateAppointment: failed to get service id=%s: %v", target.ServiceID, err)
		return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("UpdateAppointment: service id=%s is inactive", target.ServiceID)
		return ErrServiceNotFound
	}
	if _, ok := service.Duration(); !ok {
		uc.logger.Warn("UpdateAppointment: service id=%s has no duration", target.ServiceID)
		return ErrServiceWithoutDuration
	}
	return nil
}

// validateStaff проверяет, что специалист существует, имеет роль специалиста и оказывает услугу записи
func (uc *UseCase) validateStaff(ctx context.Context, target *domain.Appointment) error {
	staff, err := uc.catalogRepo.GetStaff(ctx, target.StaffID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			uc.logger.Warn("UpdateAppointment: staff id=%s not found", target.StaffID)
			return ErrStaffNotFound
		}
		uc.logger.Error("UpdateAppointment: failed to get staff id=%s: %v", target.StaffID, err)
		return fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.CanPerformServices() {
		uc.logger.Warn("UpdateAppointment: user id=%s has role %s", staff.ID, staff.Role)
		return ErrStaffNotFound
	}

	qualified, err := uc.catalogRepo.IsQualified(ctx, target.StaffID, target.ServiceID)
	if err != nil {
		uc.logger.Error("UpdateAppointment: failed to check qualification: %v", err)
		return fmt.Errorf("%w: failed to check qualification: %v", ErrInternal, err)
	}
	if !qualified {
		uc.logger.Warn("UpdateAppointment: staff id=%s is not qualified for service id=%s", target.StaffID, target.ServiceID)
		return ErrStaffNotQualified
	}

	return nil
}

// checkSlot проверяет новый интервал: покрытие блоком доступности и отсутствие пересечений,
// не считая саму переносимую запись
func (uc *UseCase) checkSlot(ctx context.Context, target *domain.Appointment) error {
	slot := target.Interval()

	if _, err := uc.availabilityRepo.FindCovering(ctx, target.StaffID, slot.Start, slot.End); err != nil {
		if errors.Is(err, availabilityRepo.ErrBlockNotFound) {
			uc.logger.Warn("UpdateAppointment: staff id=%s has no availability for %s-%s",
				target.StaffID, slot.Start.Format(time.RFC3339), slot.End.Format(time.RFC3339))
			uc.metrics.BookingRejected(reasonNotAvailable)
			return ErrStaffNotAvailable
		}
		uc.logger.Error("UpdateAppointment: failed to find availability: %v", err)
		return fmt.Errorf("%w: failed to find availability: %w", ErrInternal, err)
	}

	overlapping, err := uc.appointmentRepo.List(ctx, domain.AppointmentFilter{
		Scope:     domain.AllRecords(),
		StaffID:   &target.StaffID,
		From:      &slot.Start,
		To:        &slot.End,
		ExcludeID: &target.ID,
	})
	if err != nil {
		uc.logger.Error("UpdateAppointment: failed to get appointments: %v", err)
		return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
	}
	if len(overlapping) > 0 {
		uc.logger.Warn("UpdateAppointment: staff id=%s is busy, conflicting appointment id=%s",
			target.StaffID, overlapping[0].ID)
		uc.metrics.BookingRejected(reasonDoubleBooking)
		return ErrDoubleBooking
	}

	return nil
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
