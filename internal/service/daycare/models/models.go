package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
)

// Request модели

// CreateSessionRequest запрос на создание смены
type CreateSessionRequest struct {
	Actor         domain.Actor
	Date          time.Time
	TotalCapacity int
	Price         float64
	Status        *string // AVAILABLE по умолчанию
}

// UpdateSessionRequest запрос на изменение смены
// Все поля опциональны - обновляются только переданные значения
type UpdateSessionRequest struct {
	Actor         domain.Actor
	SessionID     uuid.UUID
	Date          *time.Time
	TotalCapacity *int
	Price         *float64
	Status        *string
}

// IsEmpty проверяет, что в запросе нет изменяемых полей
func (r *UpdateSessionRequest) IsEmpty() bool {
	return r.Date == nil && r.TotalCapacity == nil && r.Price == nil && r.Status == nil
}

// ApplyToSession применяет переданные поля к смене
// Статус FULL/AVAILABLE пересчитывается по счетчику, CLOSED сохраняется до явного открытия
func (r *UpdateSessionRequest) ApplyToSession(s *domain.DaycareSession) {
	if r.Date != nil {
		s.Date = *r.Date
	}
	if r.TotalCapacity != nil {
		s.TotalCapacity = *r.TotalCapacity
	}
	if r.Price != nil {
		s.Price = *r.Price
	}
	if r.Status != nil {
		if status := domain.DaycareSessionStatus(*r.Status); status == domain.SessionClosed {
			s.Status = domain.SessionClosed
		} else {
			s.Status = domain.SessionAvailable
		}
	}
	s.Status = s.StatusFor(s.CurrentBookings)
}

// Response модели

// SessionResponse ответ с данными смены
type SessionResponse struct {
	ID              uuid.UUID `json:"id"`
	Date            string    `json:"date"` // "2025-10-15"
	TotalCapacity   int       `json:"totalCapacity"`
	CurrentBookings int       `json:"currentBookings"`
	AvailableSpots  int       `json:"availableSpots"`
	Price           float64   `json:"price"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// SessionListResponse ответ со списком смен
type SessionListResponse struct {
	Sessions []SessionResponse `json:"sessions"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        uuid.UUID  `json:"id"`
	SessionID uuid.UUID  `json:"daycareSessionId"`
	PetID     uuid.UUID  `json:"petId"`
	OwnerID   uuid.UUID  `json:"ownerId"`
	RoomID    *uuid.UUID `json:"roomId,omitempty"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainSession конвертирует domain модель в DTO
func FromDomainSession(s *domain.DaycareSession) *SessionResponse {
	if s == nil {
		return nil
	}

	return &SessionResponse{
		ID:              s.ID,
		Date:            s.Date.Format(domain.DateFormat),
		TotalCapacity:   s.TotalCapacity,
		CurrentBookings: s.CurrentBookings,
		AvailableSpots:  max(s.TotalCapacity-s.CurrentBookings, 0),
		Price:           s.Price,
		Status:          string(s.Status),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainSessionList конвертирует список domain моделей в DTO
func FromDomainSessionList(sessions []*domain.DaycareSession) *SessionListResponse {
	resp := &SessionListResponse{Sessions: make([]SessionResponse, 0, len(sessions))}
	for _, s := range sessions {
		resp.Sessions = append(resp.Sessions, *FromDomainSession(s))
	}
	return resp
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.DaycareBooking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:        b.ID,
		SessionID: b.SessionID,
		PetID:     b.PetID,
		OwnerID:   b.OwnerID,
		RoomID:    b.RoomID,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.DaycareBooking) *BookingListResponse {
	resp := &BookingListResponse{Bookings: make([]BookingResponse, 0, len(bookings))}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}
