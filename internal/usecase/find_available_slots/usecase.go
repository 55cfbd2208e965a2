package find_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/catalog"
	slotconfigRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/slotconfig"
	"github.com/m04kA/SMC-PetCareService/pkg/ptr"
)

// UseCase use case для поиска свободных слотов записи
// Результат носит рекомендательный характер: параллельная запись может занять слот
// сразу после вычисления, окончательную проверку выполняет create_appointment.
type UseCase struct {
	catalogRepo      CatalogRepository
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	slotConfigRepo   SlotConfigRepository
	defaultStep      time.Duration
	location         *time.Location
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
// defaultStepMinutes используется, если для услуги и глобально шаг не настроен;
// location задает часовой пояс, в котором считаются границы дня.
func NewUseCase(
	catalogRepo CatalogRepository,
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	slotConfigRepo SlotConfigRepository,
	defaultStepMinutes int,
	location *time.Location,
	logger Logger,
) *UseCase {
	if defaultStepMinutes <= 0 {
		defaultStepMinutes = domain.DefaultStepMinutes
	}
	if location == nil {
		location = time.UTC
	}

	return &UseCase{
		catalogRepo:      catalogRepo,
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		slotConfigRepo:   slotConfigRepo,
		defaultStep:      time.Duration(defaultStepMinutes) * time.Minute,
		location:         location,
		logger:           logger,
	}
}

// Execute выполняет поиск свободных слотов на день
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("FindAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	dayStart, dayEnd := domain.DayBounds(req.Date, uc.location)
	day := domain.Interval{Start: dayStart, End: dayEnd}

	uc.logger.Info("FindAvailableSlots: service=%s, date=%s, staff=%v",
		req.ServiceID, dayStart.Format(domain.DateFormat), ptr.Deref(req.StaffID, uuid.Nil))

	// 2. Получаем услугу: она должна существовать, быть активной и иметь длительность
	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("FindAvailableSlots: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("FindAvailableSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	duration, ok := service.Duration()
	if !service.IsActive || !ok {
		uc.logger.Warn("FindAvailableSlots: service id=%s is inactive or has no duration", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	// 3. Определяем набор специалистов
	staff, err := uc.resolveStaff(ctx, req)
	if err != nil {
		return nil, err
	}

	response := &Response{
		Date:      dayStart,
		ServiceID: req.ServiceID,
		Slots:     []Slot{},
	}

	if len(staff) == 0 {
		uc.logger.Info("FindAvailableSlots: no qualified staff for service id=%s", req.ServiceID)
		return response, nil
	}

	// 4. Определяем шаг сетки
	step, err := uc.resolveStep(ctx, req)
	if err != nil {
		return nil, err
	}

	// 5. Для каждого специалиста строим слоты по блокам доступности и активным записям
	for _, member := range staff {
		blocks, err := uc.availabilityRepo.ListByStaff(ctx, member.ID, dayStart, dayEnd)
		if err != nil {
			uc.logger.Error("FindAvailableSlots: failed to get availability of staff id=%s: %v", member.ID, err)
			return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
		}
		if len(blocks) == 0 {
			continue
		}

		appointments, err := uc.appointmentRepo.List(ctx, domain.AppointmentFilter{
			Scope:   domain.AllRecords(),
			StaffID: &member.ID,
			From:    &dayStart,
			To:      &dayEnd,
		})
		if err != nil {
			uc.logger.Error("FindAvailableSlots: failed to get appointments of staff id=%s: %v", member.ID, err)
			return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		response.Slots = append(response.Slots, buildStaffSlots(member, blocks, appointments, day, step, duration)...)
	}

	// 6. Объединяем результаты и сортируем по времени начала
	sortSlots(response.Slots)

	uc.logger.Info("FindAvailableSlots: found %d slots for service id=%s", len(response.Slots), req.ServiceID)

	return response, nil
}

// resolveStaff возвращает запрошенного специалиста или всех квалифицированных специалистов услуги
func (uc *UseCase) resolveStaff(ctx context.Context, req *Request) ([]*domain.StaffMember, error) {
	if req.StaffID == nil {
		qualified, err := uc.catalogRepo.GetQualifiedStaff(ctx, req.ServiceID)
		if err != nil {
			uc.logger.Error("FindAvailableSlots: failed to get qualified staff: %v", err)
			return nil, fmt.Errorf("%w: failed to get qualified staff: %v", ErrInternal, err)
		}

		staff := make([]*domain.StaffMember, 0, len(qualified))
		for _, member := range qualified {
			if member.CanPerformServices() {
				staff = append(staff, member)
			}
		}
		return staff, nil
	}

	member, err := uc.catalogRepo.GetStaff(ctx, *req.StaffID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			uc.logger.Warn("FindAvailableSlots: staff id=%s not found", *req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("FindAvailableSlots: failed to get staff id=%s: %v", *req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	if !member.CanPerformServices() {
		uc.logger.Warn("FindAvailableSlots: user id=%s has role %s", member.ID, member.Role)
		return nil, ErrStaffNotFound
	}

	qualified, err := uc.catalogRepo.IsQualified(ctx, member.ID, req.ServiceID)
	if err != nil {
		uc.logger.Error("FindAvailableSlots: failed to check qualification: %v", err)
		return nil, fmt.Errorf("%w: failed to check qualification: %v", ErrInternal, err)
	}
	if !qualified {
		uc.logger.Warn("FindAvailableSlots: staff id=%s is not qualified for service id=%s", member.ID, req.ServiceID)
		return nil, ErrStaffNotQualified
	}

	return []*domain.StaffMember{member}, nil
}

// resolveStep возвращает шаг сетки: конфигурация услуги, затем глобальная, затем значение по умолчанию
func (uc *UseCase) resolveStep(ctx context.Context, req *Request) (time.Duration, error) {
	config, err := uc.slotConfigRepo.GetWithHierarchy(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, slotconfigRepo.ErrConfigNotFound) {
			uc.logger.Info("FindAvailableSlots: using default step for service id=%s", req.ServiceID)
			return uc.defaultStep, nil
		}
		uc.logger.Error("FindAvailableSlots: failed to get slot config: %v", err)
		return 0, fmt.Errorf("%w: failed to get slot config: %v", ErrInternal, err)
	}

	uc.logger.Info("FindAvailableSlots: using slot config id=%d, step=%d min", config.ID, config.StepMinutes)
	return config.Step(), nil
}
