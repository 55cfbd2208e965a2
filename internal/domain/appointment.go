package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentScheduled   AppointmentStatus = "SCHEDULED"
	AppointmentConfirmed   AppointmentStatus = "CONFIRMED"
	AppointmentCompleted   AppointmentStatus = "COMPLETED"
	AppointmentCancelled   AppointmentStatus = "CANCELLED"
	AppointmentRescheduled AppointmentStatus = "RESCHEDULED"
	AppointmentNoShow      AppointmentStatus = "NO_SHOW"
)

// InactiveAppointmentStatuses do not occupy staff time.
var InactiveAppointmentStatuses = []AppointmentStatus{
	AppointmentCancelled,
	AppointmentNoShow,
}

var (
	ErrInvalidAppointmentStatus = fmt.Errorf("%w: invalid appointment status", ErrBadRequest)
	ErrAppointmentTerminal      = fmt.Errorf("%w: appointment status is final", ErrBadRequest)
	ErrOwnerMayOnlyCancel       = fmt.Errorf("%w: owners may only cancel appointments", ErrForbidden)
)

// ParseAppointmentStatus validates s.
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidAppointmentStatus, s)
	}
	return status, nil
}

func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentScheduled, AppointmentConfirmed, AppointmentCompleted,
		AppointmentCancelled, AppointmentRescheduled, AppointmentNoShow:
		return true
	}
	return false
}

// IsActive reports whether the appointment occupies staff time.
func (s AppointmentStatus) IsActive() bool {
	return s != AppointmentCancelled && s != AppointmentNoShow
}

// IsTerminal reports statuses that can no longer change.
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentCompleted || s == AppointmentCancelled || s == AppointmentNoShow
}

// CheckAppointmentTransition validates a status change requested by role.
// changed is false when the status stays the same.
func CheckAppointmentTransition(role Role, from, to AppointmentStatus) (changed bool, err error) {
	if !to.IsValid() {
		return false, fmt.Errorf("%w: %q", ErrInvalidAppointmentStatus, to)
	}
	if role == RoleOwner && to != AppointmentCancelled {
		return false, ErrOwnerMayOnlyCancel
	}
	if from == to {
		return false, nil
	}
	if from.IsTerminal() {
		return false, fmt.Errorf("%w: %s -> %s", ErrAppointmentTerminal, from, to)
	}
	return true, nil
}

// Appointment is a committed booking of one staff member for one pet and one service.
// DurationMinutes is fixed at commit time.
type Appointment struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	PetID           uuid.UUID
	ServiceID       uuid.UUID
	StaffID         uuid.UUID
	DateTime        time.Time
	DurationMinutes int
	Status          AppointmentStatus
	Notes           *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a *Appointment) Duration() time.Duration {
	return time.Duration(a.DurationMinutes) * time.Minute
}

func (a *Appointment) EndTime() time.Time {
	return a.DateTime.Add(a.Duration())
}

// Interval returns [DateTime, EndTime).
func (a *Appointment) Interval() Interval {
	return Interval{Start: a.DateTime, End: a.EndTime()}
}

func (a *Appointment) IsActive() bool {
	return a.Status.IsActive()
}

// AppointmentFilter selects appointments. From/To select appointments whose
// interval overlaps [From, To).
type AppointmentFilter struct {
	Scope           ScopedQuery
	StaffID         *uuid.UUID
	Status          *AppointmentStatus
	From            *time.Time
	To              *time.Time
	IncludeInactive bool
	ExcludeID       *uuid.UUID
}
