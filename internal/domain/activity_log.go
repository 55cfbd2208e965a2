package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidActivityType is returned for an unknown activity type.
var ErrInvalidActivityType = fmt.Errorf("%w: invalid activity type", ErrBadRequest)

// ActivityType classifies what happened to a pet.
type ActivityType string

const (
	ActivityFeeding    ActivityType = "FEEDING"
	ActivityWalking    ActivityType = "WALKING"
	ActivityPlaytime   ActivityType = "PLAYTIME"
	ActivityMedication ActivityType = "MEDICATION"
	ActivityGrooming   ActivityType = "GROOMING"
	ActivityRest       ActivityType = "REST"
	ActivityNote       ActivityType = "NOTE"
)

func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityFeeding, ActivityWalking, ActivityPlaytime, ActivityMedication,
		ActivityGrooming, ActivityRest, ActivityNote:
		return true
	}
	return false
}

// ParseActivityType validates s as an activity type.
func ParseActivityType(s string) (ActivityType, error) {
	t := ActivityType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidActivityType, s)
	}
	return t, nil
}

// ActivityLog is a record made by staff about a pet, optionally tied to
// one daycare booking or one appointment.
type ActivityLog struct {
	ID               uuid.UUID
	PetID            uuid.UUID
	OwnerID          uuid.UUID // owner of the pet at the time of logging
	StaffID          uuid.UUID
	ActivityType     ActivityType
	Details          string
	DaycareBookingID *uuid.UUID
	AppointmentID    *uuid.UUID
	Timestamp        time.Time
	UpdatedAt        time.Time
}

// ActivityLogFilter selects activity logs; nil fields do not filter.
type ActivityLogFilter struct {
	Scope            ScopedQuery
	PetID            *uuid.UUID
	DaycareBookingID *uuid.UUID
	AppointmentID    *uuid.UUID
}
