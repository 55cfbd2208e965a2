package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DaycareSessionStatus represents the status of a daycare session
type DaycareSessionStatus string

const (
	SessionAvailable DaycareSessionStatus = "AVAILABLE"
	SessionFull      DaycareSessionStatus = "FULL"
	SessionClosed    DaycareSessionStatus = "CLOSED"
)

func (s DaycareSessionStatus) IsValid() bool {
	return s == SessionAvailable || s == SessionFull || s == SessionClosed
}

// DaycareBookingStatus represents the status of a daycare booking
type DaycareBookingStatus string

const (
	DaycareBooked     DaycareBookingStatus = "BOOKED"
	DaycareCheckedIn  DaycareBookingStatus = "CHECKED_IN"
	DaycareCheckedOut DaycareBookingStatus = "CHECKED_OUT"
	DaycareCancelled  DaycareBookingStatus = "CANCELLED"
)

func (s DaycareBookingStatus) IsValid() bool {
	switch s {
	case DaycareBooked, DaycareCheckedIn, DaycareCheckedOut, DaycareCancelled:
		return true
	}
	return false
}

// HoldsSeat reports whether a booking in status s is counted in the session's current bookings.
func (s DaycareBookingStatus) HoldsSeat() bool {
	return s == DaycareBooked || s == DaycareCheckedIn
}

var (
	ErrInvalidDaycareStatus      = fmt.Errorf("%w: invalid daycare booking status", ErrBadRequest)
	ErrDaycareTransitionRejected = fmt.Errorf("%w: daycare booking status change is not allowed", ErrBadRequest)
)

// daycareTransitions maps an allowed status change to its effect on the session counter.
var daycareTransitions = map[DaycareBookingStatus]map[DaycareBookingStatus]int{
	DaycareBooked: {
		DaycareCheckedIn: 0,
		DaycareCancelled: -1,
	},
	DaycareCheckedIn: {
		DaycareCheckedOut: -1,
		DaycareCancelled:  -1,
	},
	DaycareCancelled: {
		DaycareBooked:    +1,
		DaycareCheckedIn: +1,
	},
}

// DaycareCounterDelta returns the change of the session counter for from -> to.
// The same status is a no-op with delta 0.
func DaycareCounterDelta(from, to DaycareBookingStatus) (int, error) {
	if !to.IsValid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDaycareStatus, to)
	}
	if from == to {
		return 0, nil
	}
	delta, ok := daycareTransitions[from][to]
	if !ok {
		return 0, fmt.Errorf("%w: %s -> %s", ErrDaycareTransitionRejected, from, to)
	}
	return delta, nil
}

// DaycareDeletionDelta returns the change of the session counter when a booking in status s is deleted.
func DaycareDeletionDelta(s DaycareBookingStatus) int {
	if s.HoldsSeat() {
		return -1
	}
	return 0
}

// DaycareSession is one bookable daycare day.
type DaycareSession struct {
	ID              uuid.UUID
	Date            time.Time
	TotalCapacity   int
	CurrentBookings int
	Price           float64
	Status          DaycareSessionStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasCapacity reports whether one more pet fits.
func (s *DaycareSession) HasCapacity() bool {
	return s.CurrentBookings < s.TotalCapacity
}

// IsBookable reports whether new bookings are accepted.
func (s *DaycareSession) IsBookable() bool {
	return s.Status != SessionClosed && s.HasCapacity()
}

// StatusFor returns the status after the counter becomes current. CLOSED is kept.
func (s *DaycareSession) StatusFor(current int) DaycareSessionStatus {
	if s.Status == SessionClosed {
		return SessionClosed
	}
	if current >= s.TotalCapacity {
		return SessionFull
	}
	return SessionAvailable
}

// DaycareBooking places one pet into one daycare session.
type DaycareBooking struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	PetID     uuid.UUID
	OwnerID   uuid.UUID
	RoomID    *uuid.UUID
	Status    DaycareBookingStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DaycareRoom is a physical room pets may be assigned to.
type DaycareRoom struct {
	ID       uuid.UUID
	Name     string
	Capacity int
}
