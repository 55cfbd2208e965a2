package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/availability"
	catalogRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-PetCareService/internal/service/availability/models"
)

// Service сервис управления окнами доступности специалистов
type Service struct {
	availabilityRepo AvailabilityRepository
	catalogRepo      CatalogRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса окон доступности
func NewService(
	availabilityRepo AvailabilityRepository,
	catalogRepo CatalogRepository,
	logger Logger,
) *Service {
	return &Service{
		availabilityRepo: availabilityRepo,
		catalogRepo:      catalogRepo,
		logger:           logger,
	}
}

// Create создает окно доступности специалиста
// Доступно администратору и самому специалисту. Окна одного специалиста не пересекаются.
func (s *Service) Create(ctx context.Context, req *models.CreateBlockRequest) (*models.BlockResponse, error) {
	s.logger.Info("Create: creating block for staff=%s [%s, %s) by user=%s",
		req.StaffID, req.StartTime, req.EndTime, req.Actor.ID)

	// 1. Проверяем права доступа
	if !canManage(req.Actor, req.StaffID) {
		s.logger.Warn("Create: user=%s cannot manage availability of staff=%s", req.Actor.ID, req.StaffID)
		return nil, ErrAccessDenied
	}

	// 2. Валидируем интервал
	if !req.StartTime.Before(req.EndTime) {
		s.logger.Warn("Create: invalid interval [%s, %s)", req.StartTime, req.EndTime)
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	// 3. Проверяем специалиста
	if err := s.checkStaff(ctx, req.StaffID); err != nil {
		return nil, err
	}

	// 4. Проверяем пересечение с существующими окнами
	existing, err := s.availabilityRepo.ListByStaff(ctx, req.StaffID, req.StartTime, req.EndTime)
	if err != nil {
		s.logger.Error("Create: failed to list blocks of staff=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}
	if len(existing) > 0 {
		s.logger.Warn("Create: block overlaps block id=%s of staff=%s", existing[0].ID, req.StaffID)
		return nil, ErrBlockOverlaps
	}

	// 5. Создаем окно
	block, err := s.availabilityRepo.Create(ctx, &domain.StaffAvailabilityBlock{
		StaffID:   req.StaffID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrInvalidInterval) {
			return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created block id=%s", block.ID)
	return models.FromDomainBlock(block), nil
}

// List получает окна специалиста, пересекающиеся с периодом
// Публичный метод - доступен всем
func (s *Service) List(ctx context.Context, req *models.ListBlocksRequest) (*models.BlockListResponse, error) {
	s.logger.Info("List: fetching blocks of staff=%s in [%s, %s)", req.StaffID, req.From, req.To)

	if !req.From.Before(req.To) {
		s.logger.Warn("List: invalid period [%s, %s)", req.From, req.To)
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	if err := s.checkStaff(ctx, req.StaffID); err != nil {
		return nil, err
	}

	blocks, err := s.availabilityRepo.ListByStaff(ctx, req.StaffID, req.From, req.To)
	if err != nil {
		s.logger.Error("List: repository error for staff=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d blocks of staff=%s", len(blocks), req.StaffID)
	return models.FromDomainBlockList(blocks), nil
}

// Delete удаляет окно доступности
// Уже существующие записи не затрагиваются
func (s *Service) Delete(ctx context.Context, staffID, blockID uuid.UUID, actor domain.Actor) error {
	s.logger.Info("Delete: deleting block id=%s of staff=%s by user=%s", blockID, staffID, actor.ID)

	if !canManage(actor, staffID) {
		s.logger.Warn("Delete: user=%s cannot manage availability of staff=%s", actor.ID, staffID)
		return ErrAccessDenied
	}

	block, err := s.availabilityRepo.GetByID(ctx, blockID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrBlockNotFound) {
			s.logger.Warn("Delete: block id=%s not found", blockID)
			return ErrBlockNotFound
		}
		s.logger.Error("Delete: repository error for block id=%s: %v", blockID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}
	if block.StaffID != staffID {
		s.logger.Warn("Delete: block id=%s belongs to staff=%s, not %s", blockID, block.StaffID, staffID)
		return ErrBlockNotFound
	}

	if err := s.availabilityRepo.Delete(ctx, blockID); err != nil {
		if errors.Is(err, availabilityRepo.ErrBlockNotFound) {
			return ErrBlockNotFound
		}
		s.logger.Error("Delete: repository error for block id=%s: %v", blockID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted block id=%s", blockID)
	return nil
}

func (s *Service) checkStaff(ctx context.Context, staffID uuid.UUID) error {
	staff, err := s.catalogRepo.GetStaff(ctx, staffID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			s.logger.Warn("staff id=%s not found", staffID)
			return ErrStaffNotFound
		}
		s.logger.Error("failed to get staff id=%s: %v", staffID, err)
		return fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.CanPerformServices() {
		s.logger.Warn("user id=%s has role %s and cannot perform services", staffID, staff.Role)
		return ErrNotStaff
	}
	return nil
}

// canManage администратор управляет любыми окнами, специалист - только своими
func canManage(actor domain.Actor, staffID uuid.UUID) bool {
	return actor.IsAdmin() || (actor.Role.IsStaff() && actor.ID == staffID)
}
