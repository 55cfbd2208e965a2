package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// Request модели

// CreateRequest запрос на создание записи журнала
type CreateRequest struct {
	Actor            domain.Actor
	PetID            uuid.UUID
	ActivityType     string
	Details          string
	DaycareBookingID *uuid.UUID
	AppointmentID    *uuid.UUID
	Timestamp        *time.Time // текущее время, если не задано
}

// ListRequest запрос на получение журнала
type ListRequest struct {
	Actor            domain.Actor
	PetID            *uuid.UUID
	DaycareBookingID *uuid.UUID
	AppointmentID    *uuid.UUID
}

// ToDomainFilter конвертирует request в domain фильтр с областью видимости пользователя
func (r *ListRequest) ToDomainFilter() domain.ActivityLogFilter {
	return domain.ActivityLogFilter{
		Scope:            domain.ScopeFor(r.Actor),
		PetID:            r.PetID,
		DaycareBookingID: r.DaycareBookingID,
		AppointmentID:    r.AppointmentID,
	}
}

// UpdateRequest запрос на изменение записи журнала
// Питомец, автор, связи и время записи не меняются
type UpdateRequest struct {
	Actor        domain.Actor
	ID           uuid.UUID
	ActivityType *string
	Details      *string
}

// IsEmpty проверяет, что в запросе нет изменяемых полей
func (r *UpdateRequest) IsEmpty() bool {
	return r.ActivityType == nil && r.Details == nil
}

// Response модели

// ActivityLogResponse ответ с данными записи журнала
type ActivityLogResponse struct {
	ID               uuid.UUID  `json:"id"`
	PetID            uuid.UUID  `json:"petId"`
	OwnerID          uuid.UUID  `json:"ownerId"`
	StaffID          uuid.UUID  `json:"staffId"`
	ActivityType     string     `json:"activityType"`
	Details          string     `json:"details"`
	DaycareBookingID *uuid.UUID `json:"daycareBookingId,omitempty"`
	AppointmentID    *uuid.UUID `json:"appointmentId,omitempty"`
	Timestamp        time.Time  `json:"timestamp"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// ActivityLogListResponse ответ со списком записей журнала
type ActivityLogListResponse struct {
	ActivityLogs []ActivityLogResponse `json:"activityLogs"`
}

// FromDomainActivityLog конвертирует domain модель в DTO
func FromDomainActivityLog(l *domain.ActivityLog) *ActivityLogResponse {
	if l == nil {
		return nil
	}
	return &ActivityLogResponse{
		ID:               l.ID,
		PetID:            l.PetID,
		OwnerID:          l.OwnerID,
		StaffID:          l.StaffID,
		ActivityType:     string(l.ActivityType),
		Details:          l.Details,
		DaycareBookingID: l.DaycareBookingID,
		AppointmentID:    l.AppointmentID,
		Timestamp:        l.Timestamp,
		UpdatedAt:        l.UpdatedAt,
	}
}

// FromDomainActivityLogList конвертирует список domain моделей в DTO
func FromDomainActivityLogList(logs []*domain.ActivityLog) *ActivityLogListResponse {
	resp := &ActivityLogListResponse{ActivityLogs: make([]ActivityLogResponse, 0, len(logs))}
	for _, l := range logs {
		resp.ActivityLogs = append(resp.ActivityLogs, *FromDomainActivityLog(l))
	}
	return resp
}
