package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-PetCareService/internal/service/catalog/models"
)

// Service сервис каталога услуг и квалификаций специалистов
type Service struct {
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// CreateService создает услугу
// Доступно только администраторам. Название услуги уникально.
func (s *Service) CreateService(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("CreateService: creating service %q by user=%s", req.Name, req.Actor.ID)

	if !req.Actor.IsAdmin() {
		s.logger.Warn("CreateService: user=%s (%s) is not an admin", req.Actor.ID, req.Actor.Role)
		return nil, ErrAccessDenied
	}

	service := &domain.Service{
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		IsActive:        true,
	}
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := validateService(service); err != nil {
		s.logger.Warn("CreateService: validation failed: %v", err)
		return nil, err
	}

	created, err := s.catalogRepo.CreateService(ctx, service)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNameTaken) {
			s.logger.Warn("CreateService: service %q already exists", service.Name)
			return nil, ErrServiceNameTaken
		}
		s.logger.Error("CreateService: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateService: successfully created service id=%s", created.ID)
	return models.FromDomainService(created), nil
}

// GetService получает услугу по ID
// Публичный метод - доступен всем
func (s *Service) GetService(ctx context.Context, serviceID uuid.UUID) (*models.ServiceResponse, error) {
	s.logger.Info("GetService: fetching service id=%s", serviceID)

	service, err := s.getService(ctx, "GetService", serviceID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainService(service), nil
}

// ListServices получает услуги
// Публичный метод - доступен всем. onlyActive скрывает деактивированные услуги.
func (s *Service) ListServices(ctx context.Context, onlyActive bool) (*models.ServiceListResponse, error) {
	s.logger.Info("ListServices: fetching services, onlyActive=%t", onlyActive)

	services, err := s.catalogRepo.ListServices(ctx, onlyActive)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListServices: successfully fetched %d services", len(services))
	return models.FromDomainServiceList(services), nil
}

// UpdateService изменяет услугу
// Доступно только администраторам. Существующие записи сохраняют свою длительность.
func (s *Service) UpdateService(ctx context.Context, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("UpdateService: updating service id=%s by user=%s", req.ServiceID, req.Actor.ID)

	if !req.Actor.IsAdmin() {
		s.logger.Warn("UpdateService: user=%s (%s) is not an admin", req.Actor.ID, req.Actor.Role)
		return nil, ErrAccessDenied
	}

	if req.IsEmpty() {
		s.logger.Warn("UpdateService: nothing to update")
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	service, err := s.getService(ctx, "UpdateService", req.ServiceID)
	if err != nil {
		return nil, err
	}

	req.ApplyToService(service)
	service.Name = strings.TrimSpace(service.Name)

	if err := validateService(service); err != nil {
		s.logger.Warn("UpdateService: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.catalogRepo.UpdateService(ctx, service)
	if err != nil {
		switch {
		case errors.Is(err, catalogRepo.ErrServiceNameTaken):
			s.logger.Warn("UpdateService: service %q already exists", service.Name)
			return nil, ErrServiceNameTaken
		case errors.Is(err, catalogRepo.ErrServiceNotFound):
			return nil, ErrServiceNotFound
		}
		s.logger.Error("UpdateService: repository error for service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: UpdateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateService: successfully updated service id=%s", updated.ID)
	return models.FromDomainService(updated), nil
}

// DeleteService удаляет услугу
// Доступно только администраторам. Услугу с записями удалить нельзя.
func (s *Service) DeleteService(ctx context.Context, serviceID uuid.UUID, actor domain.Actor) error {
	s.logger.Info("DeleteService: deleting service id=%s by user=%s", serviceID, actor.ID)

	if !actor.IsAdmin() {
		s.logger.Warn("DeleteService: user=%s (%s) is not an admin", actor.ID, actor.Role)
		return ErrAccessDenied
	}

	if err := s.catalogRepo.DeleteService(ctx, serviceID); err != nil {
		switch {
		case errors.Is(err, catalogRepo.ErrServiceNotFound):
			s.logger.Warn("DeleteService: service id=%s not found", serviceID)
			return ErrServiceNotFound
		case errors.Is(err, catalogRepo.ErrServiceInUse):
			s.logger.Warn("DeleteService: service id=%s has appointments", serviceID)
			return ErrServiceInUse
		}
		s.logger.Error("DeleteService: repository error for service id=%s: %v", serviceID, err)
		return fmt.Errorf("%w: DeleteService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteService: successfully deleted service id=%s", serviceID)
	return nil
}

// ListServiceStaff получает специалистов, квалифицированных для услуги
// Публичный метод - доступен всем
func (s *Service) ListServiceStaff(ctx context.Context, serviceID uuid.UUID) (*models.StaffListResponse, error) {
	s.logger.Info("ListServiceStaff: fetching staff of service id=%s", serviceID)

	if _, err := s.getService(ctx, "ListServiceStaff", serviceID); err != nil {
		return nil, err
	}

	staff, err := s.catalogRepo.GetQualifiedStaff(ctx, serviceID)
	if err != nil {
		s.logger.Error("ListServiceStaff: repository error for service id=%s: %v", serviceID, err)
		return nil, fmt.Errorf("%w: ListServiceStaff - repository error: %v", ErrInternal, err)
	}

	eligible := make([]*domain.StaffMember, 0, len(staff))
	for _, member := range staff {
		if member.CanPerformServices() {
			eligible = append(eligible, member)
		}
	}

	s.logger.Info("ListServiceStaff: service id=%s has %d qualified staff", serviceID, len(eligible))
	return models.FromDomainStaffList(serviceID, eligible), nil
}

// AssignQualification назначает специалисту квалификацию для услуги
// Доступно только администраторам. Повторное назначение не является ошибкой.
func (s *Service) AssignQualification(ctx context.Context, req *models.QualificationRequest) (*models.QualificationResponse, error) {
	s.logger.Info("AssignQualification: staff=%s, service=%s by user=%s", req.StaffID, req.ServiceID, req.Actor.ID)

	if !req.Actor.IsAdmin() {
		s.logger.Warn("AssignQualification: user=%s (%s) is not an admin", req.Actor.ID, req.Actor.Role)
		return nil, ErrAccessDenied
	}

	if _, err := s.getService(ctx, "AssignQualification", req.ServiceID); err != nil {
		return nil, err
	}

	staff, err := s.catalogRepo.GetStaff(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			s.logger.Warn("AssignQualification: staff id=%s not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("AssignQualification: failed to get staff id=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.CanPerformServices() {
		s.logger.Warn("AssignQualification: user id=%s has role %s", staff.ID, staff.Role)
		return nil, ErrNotStaff
	}

	created, err := s.catalogRepo.AssignQualification(ctx, req.StaffID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrReferenceNotFound) {
			s.logger.Warn("AssignQualification: staff or service was deleted concurrently: %v", err)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("AssignQualification: repository error: %v", err)
		return nil, fmt.Errorf("%w: AssignQualification - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AssignQualification: staff=%s qualified for service=%s, created=%t", req.StaffID, req.ServiceID, created)
	return &models.QualificationResponse{StaffID: req.StaffID, ServiceID: req.ServiceID, Created: created}, nil
}

// RevokeQualification снимает со специалиста квалификацию для услуги
// Доступно только администраторам. Существующие записи не затрагиваются.
func (s *Service) RevokeQualification(ctx context.Context, req *models.QualificationRequest) error {
	s.logger.Info("RevokeQualification: staff=%s, service=%s by user=%s", req.StaffID, req.ServiceID, req.Actor.ID)

	if !req.Actor.IsAdmin() {
		s.logger.Warn("RevokeQualification: user=%s (%s) is not an admin", req.Actor.ID, req.Actor.Role)
		return ErrAccessDenied
	}

	if err := s.catalogRepo.RevokeQualification(ctx, req.StaffID, req.ServiceID); err != nil {
		if errors.Is(err, catalogRepo.ErrQualificationNotFound) {
			s.logger.Warn("RevokeQualification: staff=%s has no qualification for service=%s", req.StaffID, req.ServiceID)
			return ErrQualificationNotFound
		}
		s.logger.Error("RevokeQualification: repository error: %v", err)
		return fmt.Errorf("%w: RevokeQualification - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RevokeQualification: successfully revoked staff=%s from service=%s", req.StaffID, req.ServiceID)
	return nil
}

func (s *Service) getService(ctx context.Context, op string, serviceID uuid.UUID) (*domain.Service, error) {
	service, err := s.catalogRepo.GetService(ctx, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("%s: service id=%s not found", op, serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("%s: failed to get service id=%s: %v", op, serviceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	return service, nil
}

func validateService(s *domain.Service) error {
	if s.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(s.Name) > domain.MaxServiceNameLength {
		return fmt.Errorf("%w: name must be at most %d characters", ErrInvalidInput, domain.MaxServiceNameLength)
	}
	if s.DurationMinutes != nil && (*s.DurationMinutes <= 0 || *s.DurationMinutes > domain.MaxServiceDuration) {
		return fmt.Errorf("%w: durationMinutes must be between 1 and %d", ErrInvalidInput, domain.MaxServiceDuration)
	}
	if s.Price != nil && *s.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}
