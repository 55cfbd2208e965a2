package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service represents a bookable pet-care service
type Service struct {
	ID              uuid.UUID
	Name            string
	Description     *string
	DurationMinutes *int // NULL = service cannot be scheduled
	Price           *float64
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Duration returns the service duration and false when it is not configured.
func (s *Service) Duration() (time.Duration, bool) {
	if s.DurationMinutes == nil || *s.DurationMinutes <= 0 {
		return 0, false
	}
	return time.Duration(*s.DurationMinutes) * time.Minute, true
}

// StaffMember is a user who may perform services.
type StaffMember struct {
	ID        uuid.UUID
	Role      Role
	FirstName string
	LastName  string
}

// FullName returns "first last".
func (s *StaffMember) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// CanPerformServices reports whether the user has a staff role.
func (s *StaffMember) CanPerformServices() bool {
	return s.Role.IsStaff()
}

// Pet as known from the pet registry.
type Pet struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	Name    string
}

// StaffAvailabilityBlock is a window in which a staff member accepts appointments.
type StaffAvailabilityBlock struct {
	ID        uuid.UUID
	StaffID   uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	CreatedAt time.Time
}

func (b *StaffAvailabilityBlock) Interval() Interval {
	return Interval{Start: b.StartTime, End: b.EndTime}
}

// Covers reports whether [start, end) lies within the block.
func (b *StaffAvailabilityBlock) Covers(start, end time.Time) bool {
	return ContainsInterval(b.StartTime, b.EndTime, start, end)
}

// AvailableSlot is a bookable start time for one staff member.
type AvailableSlot struct {
	StartTime time.Time
	EndTime   time.Time
	StaffID   uuid.UUID
	StaffName string
}
