package slotconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/catalog"
	slotconfigRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/slotconfig"
	"github.com/m04kA/SMC-PetCareService/internal/service/slotconfig/models"
)

// Service сервис для работы с конфигурацией шага слотов
type Service struct {
	configRepo         SlotConfigRepository
	catalogRepo        CatalogRepository
	defaultStepMinutes int
	logger             Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	configRepo SlotConfigRepository,
	catalogRepo CatalogRepository,
	defaultStepMinutes int,
	logger Logger,
) *Service {
	return &Service{
		configRepo:         configRepo,
		catalogRepo:        catalogRepo,
		defaultStepMinutes: defaultStepMinutes,
		logger:             logger,
	}
}

// GetEffective получает действующий шаг слотов для услуги
// Публичный метод - доступен всем
//
// Приоритет применения конфигурации:
// 1. Конфигурация услуги
// 2. Глобальная конфигурация
// 3. Значение по умолчанию из настроек сервиса
func (s *Service) GetEffective(ctx context.Context, serviceID uuid.UUID) (*models.ConfigResponse, error) {
	s.logger.Info("GetEffective: fetching config for service=%s", serviceID)

	if err := s.checkService(ctx, "GetEffective", serviceID); err != nil {
		return nil, err
	}

	config, err := s.configRepo.GetWithHierarchy(ctx, serviceID)
	if err != nil {
		if errors.Is(err, slotconfigRepo.ErrConfigNotFound) {
			s.logger.Info("GetEffective: no config for service=%s, using default step=%d", serviceID, s.defaultStepMinutes)
			return models.DefaultConfig(s.defaultStepMinutes), nil
		}
		s.logger.Error("GetEffective: repository error for service=%s: %v", serviceID, err)
		return nil, fmt.Errorf("%w: GetEffective - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainConfig(config)
	s.logger.Info("GetEffective: service=%s uses %s config id=%d, step=%d", serviceID, resp.Source, config.ID, config.StepMinutes)
	return resp, nil
}

// Upsert устанавливает шаг слотов для услуги или глобально
// Доступно только администраторам
func (s *Service) Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Upsert: setting step=%d for service=%v by user=%s", req.StepMinutes, req.ServiceID, req.Actor.ID)

	// 1. Проверяем права доступа
	if !req.Actor.IsAdmin() {
		s.logger.Warn("Upsert: user=%s (%s) is not an admin", req.Actor.ID, req.Actor.Role)
		return nil, ErrAccessDenied
	}

	// 2. Валидируем шаг
	if req.StepMinutes < domain.MinStepMinutes || req.StepMinutes > domain.MaxStepMinutes {
		s.logger.Warn("Upsert: invalid step=%d", req.StepMinutes)
		return nil, fmt.Errorf("%w: stepMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinStepMinutes, domain.MaxStepMinutes)
	}

	// 3. Проверяем услугу, если конфигурация не глобальная
	if req.ServiceID != nil {
		if err := s.checkService(ctx, "Upsert", *req.ServiceID); err != nil {
			return nil, err
		}
	}

	// 4. Обновляем существующую конфигурацию уровня или создаем новую
	existing, err := s.configRepo.GetByService(ctx, req.ServiceID)
	if err != nil && !errors.Is(err, slotconfigRepo.ErrConfigNotFound) {
		s.logger.Error("Upsert: failed to check existing config: %v", err)
		return nil, fmt.Errorf("%w: failed to check existing config: %v", ErrInternal, err)
	}

	var saved *domain.SlotConfig
	if existing != nil {
		existing.StepMinutes = req.StepMinutes
		saved, err = s.configRepo.Update(ctx, existing)
	} else {
		saved, err = s.configRepo.Create(ctx, &domain.SlotConfig{
			ServiceID:   req.ServiceID,
			StepMinutes: req.StepMinutes,
		})
	}
	if err != nil {
		if errors.Is(err, slotconfigRepo.ErrConfigExists) {
			s.logger.Warn("Upsert: config for service=%v was created concurrently", req.ServiceID)
			return nil, ErrConfigAlreadyExists
		}
		s.logger.Error("Upsert: repository error: %v", err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully saved config id=%d", saved.ID)
	return models.FromDomainConfig(saved), nil
}

func (s *Service) checkService(ctx context.Context, op string, serviceID uuid.UUID) error {
	if _, err := s.catalogRepo.GetService(ctx, serviceID); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("%s: service id=%s not found", op, serviceID)
			return ErrServiceNotFound
		}
		s.logger.Error("%s: failed to get service id=%s: %v", op, serviceID, err)
		return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	return nil
}
