package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/infra/lock"
	appointmentRepo "github.com/m04kA/SMC-PetCareService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-PetCareService/internal/testutil"
	"github.com/m04kA/SMC-PetCareService/internal/usecase/find_available_slots"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
	"github.com/m04kA/SMC-PetCareService/pkg/ptr"
	"github.com/m04kA/SMC-PetCareService/pkg/txmanager"
)

var testDay = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return testDay.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

type fixture struct {
	appointments *testutil.Appointments
	availability *testutil.Availability
	catalog      *testutil.Catalog
	pets         *testutil.Pets
	locker       *testutil.Locker
	recorder     *testutil.Recorder
	tx           TransactionManager
	uc           *UseCase

	ownerID uuid.UUID
	pet     *domain.Pet
	service *domain.Service
	staff   *domain.StaffMember
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		appointments: &testutil.Appointments{},
		availability: &testutil.Availability{},
		catalog:      &testutil.Catalog{},
		pets:         &testutil.Pets{},
		locker:       &testutil.Locker{},
		recorder:     &testutil.Recorder{},
		tx:           &testutil.TxManager{},
		ownerID:      uuid.New(),
	}
	f.pet = f.pets.Add(f.ownerID, "Rex")
	f.service = f.catalog.AddService("Grooming", 60)
	f.staff = f.catalog.AddStaff(domain.RoleGroomer, "Anna", "Petrova")
	f.catalog.Qualify(f.staff.ID, f.service.ID)
	f.availability.Add(f.staff.ID, at(10, 0), at(12, 0))
	f.build()

	return f
}

func (f *fixture) build() {
	f.uc = NewUseCase(f.appointments, f.availability, f.catalog, f.pets, f.tx, f.locker,
		10*time.Second, time.UTC, f.recorder, logger.NewNop())
}

func (f *fixture) request(start time.Time) *Request {
	return &Request{
		OwnerID:   f.ownerID,
		PetID:     f.pet.ID,
		ServiceID: f.service.ID,
		StaffID:   f.staff.ID,
		StartTime: start,
		Notes:     ptr.Ptr("first visit"),
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), f.request(at(10, 0)))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, string(domain.AppointmentScheduled), resp.Status)
	assert.Equal(t, at(10, 0), resp.DateTime)
	assert.Equal(t, at(11, 0), resp.EndTime)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, f.ownerID, resp.OwnerID)
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "first visit", *resp.Notes)

	assert.Equal(t, 1, f.recorder.Created)
	assert.Equal(t, []string{lock.StaffDayKey(f.staff.ID, testDay)}, f.locker.Keys)
	assert.Len(t, f.appointments.All(), 1)
}

func TestExecute_NoCoveringBlock(t *testing.T) {
	f := newFixture(t)

	// 11:30-12:30 sticks out of the 10:00-12:00 block
	_, err := f.uc.Execute(context.Background(), f.request(at(11, 30)))
	assert.ErrorIs(t, err, ErrStaffNotAvailable)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, []string{reasonNotAvailable}, f.recorder.Rejections)
	assert.Empty(t, f.appointments.All())
}

func TestExecute_OverlapWithDifferentStart(t *testing.T) {
	f := newFixture(t)
	f.appointments.Seed(domain.Appointment{
		StaffID:         f.staff.ID,
		DateTime:        at(10, 30),
		DurationMinutes: 60,
	})

	_, err := f.uc.Execute(context.Background(), f.request(at(10, 0)))
	assert.ErrorIs(t, err, ErrDoubleBooking)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, []string{reasonDoubleBooking}, f.recorder.Rejections)
}

func TestExecute_AdjacentAndCancelledDoNotConflict(t *testing.T) {
	f := newFixture(t)
	f.appointments.Seed(domain.Appointment{
		StaffID:         f.staff.ID,
		DateTime:        at(11, 0),
		DurationMinutes: 60,
	})
	f.appointments.Seed(domain.Appointment{
		StaffID:         f.staff.ID,
		DateTime:        at(10, 0),
		DurationMinutes: 60,
		Status:          domain.AppointmentNoShow,
	})
	f.appointments.Seed(domain.Appointment{
		StaffID:         f.staff.ID,
		DateTime:        at(10, 0),
		DurationMinutes: 60,
		Status:          domain.AppointmentCancelled,
	})

	resp, err := f.uc.Execute(context.Background(), f.request(at(10, 0)))
	require.NoError(t, err)
	assert.Equal(t, at(10, 0), resp.DateTime)

	// Второй активный запрос на то же начало отклоняется
	_, err = f.uc.Execute(context.Background(), f.request(at(10, 0)))
	assert.ErrorIs(t, err, ErrDoubleBooking)
}

func TestExecute_AcrossMidnightLocksEveryDay(t *testing.T) {
	f := newFixture(t)
	f.availability.Add(f.staff.ID, at(23, 0), at(25, 0))
	nextDay := testDay.AddDate(0, 0, 1)

	f.locker.Hold(lock.StaffDayKey(f.staff.ID, nextDay))
	_, err := f.uc.Execute(context.Background(), f.request(at(23, 30)))
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Empty(t, f.appointments.All())

	f.locker = &testutil.Locker{}
	f.build()
	_, err = f.uc.Execute(context.Background(), f.request(at(23, 30)))
	require.NoError(t, err)
	assert.Equal(t, []string{
		lock.StaffDayKey(f.staff.ID, testDay),
		lock.StaffDayKey(f.staff.ID, nextDay),
	}, f.locker.Keys)
}

func TestExecute_LockBusy(t *testing.T) {
	f := newFixture(t)
	f.locker.Hold(lock.StaffDayKey(f.staff.ID, testDay))

	_, err := f.uc.Execute(context.Background(), f.request(at(10, 0)))
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Empty(t, f.appointments.All())
}

func TestExecute_LockReleased(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), f.request(at(10, 0)))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), f.request(at(11, 0)))
	require.NoError(t, err)
}

func TestExecute_StorageConstraint(t *testing.T) {
	f := newFixture(t)
	f.appointments.Fail("Create", fmt.Errorf("%w: Create - appointments_no_overlap", appointmentRepo.ErrSlotNotAvailable))

	_, err := f.uc.Execute(context.Background(), f.request(at(10, 0)))
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.Equal(t, []string{reasonConcurrent}, f.recorder.Rejections)
}

type serializationTx struct{}

func (serializationTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return fmt.Errorf("%w: could not serialize access", txmanager.ErrSerialization)
}

func TestExecute_SerializationFailure(t *testing.T) {
	f := newFixture(t)
	f.tx = serializationTx{}
	f.build()

	_, err := f.uc.Execute(context.Background(), f.request(at(10, 0)))
	assert.ErrorIs(t, err, ErrSlotTaken)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Zero(t, f.recorder.Created)
}

func TestExecute_ValidationChain(t *testing.T) {
	f := newFixture(t)
	strangerPet := f.pets.Add(uuid.New(), "Tom")
	inactive := f.catalog.AddService("Retired", 30)
	f.catalog.Deactivate(inactive.ID)
	noDuration := f.catalog.AddService("Consultation", 0)
	admin := f.catalog.AddStaff(domain.RoleAdmin, "Root", "Admin")
	unqualified := f.catalog.AddStaff(domain.RoleClinicStaff, "Ivan", "Sidorov")

	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
		kind    error
	}{
		{"missing pet id", func(r *Request) { r.PetID = uuid.Nil }, ErrInvalidInput, domain.ErrBadRequest},
		{"missing start", func(r *Request) { r.StartTime = time.Time{} }, ErrInvalidInput, domain.ErrBadRequest},
		{"unknown pet", func(r *Request) { r.PetID = uuid.New() }, ErrPetNotFound, domain.ErrNotFound},
		{"foreign pet", func(r *Request) { r.PetID = strangerPet.ID }, ErrPetNotOwned, domain.ErrForbidden},
		{"unknown service", func(r *Request) { r.ServiceID = uuid.New() }, ErrServiceNotFound, domain.ErrNotFound},
		{"inactive service", func(r *Request) { r.ServiceID = inactive.ID }, ErrServiceNotFound, domain.ErrNotFound},
		{"service without duration", func(r *Request) { r.ServiceID = noDuration.ID }, ErrServiceWithoutDuration, domain.ErrBadRequest},
		{"unknown staff", func(r *Request) { r.StaffID = uuid.New() }, ErrStaffNotFound, domain.ErrNotFound},
		{"admin is not staff", func(r *Request) { r.StaffID = admin.ID }, ErrStaffNotFound, domain.ErrNotFound},
		{"unqualified staff", func(r *Request) { r.StaffID = unqualified.ID }, ErrStaffNotQualified, domain.ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.request(at(10, 0))
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, tt.kind)
		})
	}
	assert.Empty(t, f.appointments.All())
}

func TestExecute_PetRegistryFailure(t *testing.T) {
	f := newFixture(t)
	f.pets.Fail("GetPet", errors.New("registry unavailable"))

	_, err := f.uc.Execute(context.Background(), f.request(at(10, 0)))
	assert.ErrorIs(t, err, domain.ErrInternal)
}

// Every slot offered by the slot finder can be booked, and booking it removes it from the next query.
func TestExecute_OfferedSlotsAreBookable(t *testing.T) {
	f := newFixture(t)
	f.availability.Add(f.staff.ID, at(14, 0), at(16, 30))
	f.appointments.Seed(domain.Appointment{StaffID: f.staff.ID, DateTime: at(14, 45), DurationMinutes: 30})

	finder := find_available_slots.NewUseCase(f.catalog, f.availability, f.appointments, &testutil.SlotConfigs{},
		domain.DefaultStepMinutes, time.UTC, logger.NewNop())

	for {
		resp, err := finder.Execute(context.Background(), &find_available_slots.Request{ServiceID: f.service.ID, Date: testDay})
		require.NoError(t, err)
		if len(resp.Slots) == 0 {
			break
		}

		_, err = f.uc.Execute(context.Background(), f.request(resp.Slots[0].StartTime))
		require.NoError(t, err, "slot %s", resp.Slots[0].StartTime)
	}

	active := make([]domain.Interval, 0)
	for _, a := range f.appointments.All() {
		if !a.IsActive() {
			continue
		}
		for _, other := range active {
			assert.False(t, other.Overlaps(a.Interval()))
		}
		active = append(active, a.Interval())
	}
	assert.Len(t, active, 4)
}
