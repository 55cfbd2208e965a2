package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// Request модели

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	Actor           domain.Actor
	Name            string
	Description     *string
	DurationMinutes *int
	Price           *float64
	IsActive        *bool // true по умолчанию
}

// UpdateServiceRequest запрос на изменение услуги
// Все поля опциональны - обновляются только переданные значения
type UpdateServiceRequest struct {
	Actor           domain.Actor
	ServiceID       uuid.UUID
	Name            *string
	Description     *string
	DurationMinutes *int
	Price           *float64
	IsActive        *bool
}

// IsEmpty проверяет, что в запросе нет изменяемых полей
func (r *UpdateServiceRequest) IsEmpty() bool {
	return r.Name == nil && r.Description == nil && r.DurationMinutes == nil && r.Price == nil && r.IsActive == nil
}

// ApplyToService применяет переданные поля к услуге
func (r *UpdateServiceRequest) ApplyToService(s *domain.Service) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Description != nil {
		s.Description = r.Description
	}
	if r.DurationMinutes != nil {
		s.DurationMinutes = r.DurationMinutes
	}
	if r.Price != nil {
		s.Price = r.Price
	}
	if r.IsActive != nil {
		s.IsActive = *r.IsActive
	}
}

// QualificationRequest запрос на назначение или снятие квалификации специалиста
type QualificationRequest struct {
	Actor     domain.Actor
	StaffID   uuid.UUID
	ServiceID uuid.UUID
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description,omitempty"`
	DurationMinutes *int      `json:"durationMinutes,omitempty"`
	Price           *float64  `json:"price,omitempty"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// StaffResponse ответ с данными специалиста
type StaffResponse struct {
	ID        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}

// StaffListResponse ответ со списком специалистов услуги
type StaffListResponse struct {
	ServiceID uuid.UUID       `json:"serviceId"`
	Staff     []StaffResponse `json:"staff"`
}

// QualificationResponse ответ о назначенной квалификации
type QualificationResponse struct {
	StaffID   uuid.UUID `json:"staffId"`
	ServiceID uuid.UUID `json:"serviceId"`
	Created   bool      `json:"created"`
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}
	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(services))}
	for _, s := range services {
		resp.Services = append(resp.Services, *FromDomainService(s))
	}
	return resp
}

// FromDomainStaffList конвертирует список специалистов в DTO
func FromDomainStaffList(serviceID uuid.UUID, staff []*domain.StaffMember) *StaffListResponse {
	resp := &StaffListResponse{ServiceID: serviceID, Staff: make([]StaffResponse, 0, len(staff))}
	for _, m := range staff {
		resp.Staff = append(resp.Staff, StaffResponse{
			ID:        m.ID,
			Role:      string(m.Role),
			FirstName: m.FirstName,
			LastName:  m.LastName,
		})
	}
	return resp
}
