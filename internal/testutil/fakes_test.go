package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/appointment"
	daycareRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/daycare"
)

func TestAppointments_InactiveRowsDoNotHoldTheSlot(t *testing.T) {
	ctx := context.Background()
	staffID := uuid.New()
	start := time.Date(2030, 3, 4, 10, 0, 0, 0, time.UTC)
	appointment := func(status domain.AppointmentStatus) *domain.Appointment {
		return &domain.Appointment{
			OwnerID:         uuid.New(),
			PetID:           uuid.New(),
			ServiceID:       uuid.New(),
			StaffID:         staffID,
			DateTime:        start,
			DurationMinutes: 30,
			Status:          status,
		}
	}

	repo := &Appointments{}
	repo.Seed(*appointment(domain.AppointmentCancelled))
	repo.Seed(*appointment(domain.AppointmentNoShow))

	created, err := repo.Create(ctx, appointment(domain.AppointmentScheduled))
	require.NoError(t, err)

	_, err = repo.Create(ctx, appointment(domain.AppointmentScheduled))
	assert.ErrorIs(t, err, appointmentRepo.ErrSlotNotAvailable)

	other := appointment(domain.AppointmentScheduled)
	other.StaffID = uuid.New()
	_, err = repo.Create(ctx, other)
	assert.NoError(t, err)

	require.NoError(t, repo.UpdateStatus(ctx, created.ID, domain.AppointmentCancelled))
	_, err = repo.Create(ctx, appointment(domain.AppointmentScheduled))
	assert.NoError(t, err)
}

func TestAppointments_OverlapAndAdjacency(t *testing.T) {
	ctx := context.Background()
	staffID := uuid.New()
	at := func(hour, minute, duration int) *domain.Appointment {
		return &domain.Appointment{
			StaffID:         staffID,
			DateTime:        time.Date(2030, 3, 4, hour, minute, 0, 0, time.UTC),
			DurationMinutes: duration,
			Status:          domain.AppointmentConfirmed,
		}
	}

	repo := &Appointments{}
	_, err := repo.Create(ctx, at(10, 0, 60))
	require.NoError(t, err)

	_, err = repo.Create(ctx, at(10, 30, 30))
	assert.ErrorIs(t, err, appointmentRepo.ErrSlotNotAvailable)

	_, err = repo.Create(ctx, at(11, 0, 30))
	assert.NoError(t, err)

	moved, err := repo.Create(ctx, at(12, 0, 30))
	require.NoError(t, err)
	moved.DateTime = time.Date(2030, 3, 4, 10, 45, 0, 0, time.UTC)
	_, err = repo.Update(ctx, moved)
	assert.ErrorIs(t, err, appointmentRepo.ErrSlotNotAvailable)
}

func TestDaycare_ActivePetIndex(t *testing.T) {
	ctx := context.Background()
	repo := &Daycare{}
	session := repo.SeedSession(domain.DaycareSession{TotalCapacity: 3})
	petID := uuid.New()
	booking := func(status domain.DaycareBookingStatus) *domain.DaycareBooking {
		return &domain.DaycareBooking{SessionID: session.ID, PetID: petID, OwnerID: uuid.New(), Status: status}
	}

	first, err := repo.CreateBooking(ctx, booking(domain.DaycareBooked))
	require.NoError(t, err)

	_, err = repo.CreateBooking(ctx, booking(domain.DaycareBooked))
	assert.ErrorIs(t, err, daycareRepo.ErrPetAlreadyBooked)

	_, err = repo.CreateBooking(ctx, booking(domain.DaycareCancelled))
	assert.NoError(t, err)

	first.Status = domain.DaycareCheckedOut
	_, err = repo.UpdateBooking(ctx, first)
	require.NoError(t, err)

	second, err := repo.CreateBooking(ctx, booking(domain.DaycareBooked))
	require.NoError(t, err)

	first.Status = domain.DaycareCheckedIn
	_, err = repo.UpdateBooking(ctx, first)
	assert.ErrorIs(t, err, daycareRepo.ErrPetAlreadyBooked)

	second.Status = domain.DaycareCancelled
	_, err = repo.UpdateBooking(ctx, second)
	assert.NoError(t, err)
}

func TestDaycare_AdjustCurrentBookingsBounds(t *testing.T) {
	ctx := context.Background()
	repo := &Daycare{}
	session := repo.SeedSession(domain.DaycareSession{TotalCapacity: 1})

	updated, err := repo.AdjustCurrentBookings(ctx, session.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionFull, updated.Status)

	_, err = repo.AdjustCurrentBookings(ctx, session.ID, 1)
	assert.ErrorIs(t, err, daycareRepo.ErrCapacityExceeded)

	updated, err = repo.AdjustCurrentBookings(ctx, session.ID, -1)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionAvailable, updated.Status)

	_, err = repo.AdjustCurrentBookings(ctx, session.ID, -1)
	assert.ErrorIs(t, err, daycareRepo.ErrCapacityExceeded)

	_, err = repo.AdjustCurrentBookings(ctx, uuid.New(), 1)
	assert.ErrorIs(t, err, daycareRepo.ErrSessionNotFound)
}
