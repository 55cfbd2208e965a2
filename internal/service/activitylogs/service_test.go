package activitylogs

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/activitylogs/models"
	"github.com/m04kA/SMC-PetCareService/internal/testutil"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
)

var now = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

type fixture struct {
	logs         *testutil.ActivityLogs
	pets         *testutil.Pets
	daycare      *testutil.Daycare
	appointments *testutil.Appointments
	svc          *Service

	owner   domain.Actor
	groomer domain.Actor
	admin   domain.Actor
	pet     *domain.Pet
}

func newFixture() *fixture {
	f := &fixture{
		logs:         &testutil.ActivityLogs{},
		pets:         &testutil.Pets{},
		daycare:      &testutil.Daycare{},
		appointments: &testutil.Appointments{},
		owner:        domain.Actor{ID: uuid.New(), Role: domain.RoleOwner},
		groomer:      domain.Actor{ID: uuid.New(), Role: domain.RoleGroomer},
		admin:        domain.Actor{ID: uuid.New(), Role: domain.RoleAdmin},
	}
	f.svc = NewService(f.logs, f.pets, f.daycare, f.appointments, logger.NewNop())
	f.svc.now = func() time.Time { return now }
	f.pet = f.pets.Add(f.owner.ID, "Barsik")
	return f
}

func TestCreate(t *testing.T) {
	f := newFixture()
	booking := f.daycare.SeedBooking(domain.DaycareBooking{PetID: f.pet.ID, OwnerID: f.owner.ID, Status: domain.DaycareCheckedIn})

	resp, err := f.svc.Create(context.Background(), &models.CreateRequest{
		Actor:            f.groomer,
		PetID:            f.pet.ID,
		ActivityType:     string(domain.ActivityWalking),
		Details:          "  Two laps around the yard ",
		DaycareBookingID: &booking.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, f.owner.ID, resp.OwnerID, "owner comes from the pet registry")
	assert.Equal(t, f.groomer.ID, resp.StaffID)
	assert.Equal(t, "Two laps around the yard", resp.Details)
	assert.Equal(t, now, resp.Timestamp)
	require.NotNil(t, resp.DaycareBookingID)
	assert.Equal(t, booking.ID, *resp.DaycareBookingID)
}

func TestCreate_PastTimestampAndAppointmentLink(t *testing.T) {
	f := newFixture()
	appointment := f.appointments.Seed(domain.Appointment{PetID: f.pet.ID, OwnerID: f.owner.ID})
	earlier := now.Add(-2 * time.Hour)

	resp, err := f.svc.Create(context.Background(), &models.CreateRequest{
		Actor:         f.admin,
		PetID:         f.pet.ID,
		ActivityType:  string(domain.ActivityMedication),
		Details:       "Antibiotics",
		AppointmentID: &appointment.ID,
		Timestamp:     &earlier,
	})
	require.NoError(t, err)
	assert.Equal(t, earlier, resp.Timestamp)
	assert.Nil(t, resp.DaycareBookingID)
}

func TestCreate_Rejections(t *testing.T) {
	f := newFixture()
	otherPet := f.pets.Add(uuid.New(), "Sharik")
	foreignBooking := f.daycare.SeedBooking(domain.DaycareBooking{PetID: otherPet.ID, Status: domain.DaycareBooked})
	foreignAppointment := f.appointments.Seed(domain.Appointment{PetID: otherPet.ID})
	future := now.Add(time.Hour)

	valid := func(mut func(r *models.CreateRequest)) *models.CreateRequest {
		r := &models.CreateRequest{
			Actor:        f.groomer,
			PetID:        f.pet.ID,
			ActivityType: string(domain.ActivityFeeding),
			Details:      "Dry food",
		}
		mut(r)
		return r
	}

	tests := []struct {
		name    string
		req     *models.CreateRequest
		wantErr error
	}{
		{"owner", valid(func(r *models.CreateRequest) { r.Actor = f.owner }), ErrAccessDenied},
		{"unknown type", valid(func(r *models.CreateRequest) { r.ActivityType = "SWIMMING" }), ErrInvalidInput},
		{"blank details", valid(func(r *models.CreateRequest) { r.Details = "  " }), ErrInvalidInput},
		{"long details", valid(func(r *models.CreateRequest) {
			r.Details = strings.Repeat("x", domain.MaxActivityDetailsLength+1)
		}), ErrInvalidInput},
		{"two links", valid(func(r *models.CreateRequest) {
			r.DaycareBookingID = &foreignBooking.ID
			r.AppointmentID = &foreignAppointment.ID
		}), ErrInvalidInput},
		{"future timestamp", valid(func(r *models.CreateRequest) { r.Timestamp = &future }), ErrInvalidInput},
		{"unknown pet", valid(func(r *models.CreateRequest) { r.PetID = uuid.New() }), ErrPetNotFound},
		{"unknown booking", valid(func(r *models.CreateRequest) { r.DaycareBookingID = ptr(uuid.New()) }), ErrBookingNotFound},
		{"unknown appointment", valid(func(r *models.CreateRequest) { r.AppointmentID = ptr(uuid.New()) }), ErrAppointmentNotFound},
		{"booking of another pet", valid(func(r *models.CreateRequest) { r.DaycareBookingID = &foreignBooking.ID }), ErrLinkMismatch},
		{"appointment of another pet", valid(func(r *models.CreateRequest) { r.AppointmentID = &foreignAppointment.ID }), ErrLinkMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	logs, err := f.logs.List(context.Background(), domain.ActivityLogFilter{Scope: domain.AllRecords()})
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestCreate_RegistryUnavailable(t *testing.T) {
	f := newFixture()
	f.pets.Fail("GetPet", errors.New("timeout"))

	_, err := f.svc.Create(context.Background(), &models.CreateRequest{
		Actor: f.groomer, PetID: f.pet.ID, ActivityType: string(domain.ActivityRest), Details: "Nap",
	})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestGetAndList_OwnerScope(t *testing.T) {
	f := newFixture()
	mine := f.logs.Seed(domain.ActivityLog{PetID: f.pet.ID, OwnerID: f.owner.ID, StaffID: f.groomer.ID,
		ActivityType: domain.ActivityFeeding, Details: "Breakfast", Timestamp: now.Add(-3 * time.Hour)})
	f.logs.Seed(domain.ActivityLog{PetID: f.pet.ID, OwnerID: f.owner.ID, StaffID: f.groomer.ID,
		ActivityType: domain.ActivityWalking, Details: "Walk", Timestamp: now.Add(-time.Hour)})
	foreign := f.logs.Seed(domain.ActivityLog{PetID: uuid.New(), OwnerID: uuid.New(), StaffID: f.groomer.ID,
		ActivityType: domain.ActivityRest, Details: "Nap", Timestamp: now})

	got, err := f.svc.GetByID(context.Background(), mine.ID, f.owner)
	require.NoError(t, err)
	assert.Equal(t, "Breakfast", got.Details)

	_, err = f.svc.GetByID(context.Background(), foreign.ID, f.owner)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.GetByID(context.Background(), foreign.ID, f.groomer)
	require.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), uuid.New(), f.admin)
	assert.ErrorIs(t, err, ErrActivityLogNotFound)

	list, err := f.svc.List(context.Background(), &models.ListRequest{Actor: f.owner})
	require.NoError(t, err)
	require.Len(t, list.ActivityLogs, 2)
	assert.Equal(t, "Walk", list.ActivityLogs[0].Details, "newest first")

	all, err := f.svc.List(context.Background(), &models.ListRequest{Actor: f.admin})
	require.NoError(t, err)
	assert.Len(t, all.ActivityLogs, 3)

	byPet, err := f.svc.List(context.Background(), &models.ListRequest{Actor: f.groomer, PetID: &f.pet.ID})
	require.NoError(t, err)
	assert.Len(t, byPet.ActivityLogs, 2)
}

func TestUpdate(t *testing.T) {
	f := newFixture()
	otherGroomer := domain.Actor{ID: uuid.New(), Role: domain.RoleGroomer}
	log := f.logs.Seed(domain.ActivityLog{PetID: f.pet.ID, OwnerID: f.owner.ID, StaffID: f.groomer.ID,
		ActivityType: domain.ActivityNote, Details: "Calm", Timestamp: now})

	resp, err := f.svc.Update(context.Background(), &models.UpdateRequest{
		Actor: f.groomer, ID: log.ID, ActivityType: ptr(string(domain.ActivityPlaytime)),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.ActivityPlaytime), resp.ActivityType)
	assert.Equal(t, "Calm", resp.Details)

	_, err = f.svc.Update(context.Background(), &models.UpdateRequest{Actor: f.admin, ID: log.ID, Details: ptr("Played with a ball")})
	require.NoError(t, err)

	tests := []struct {
		name    string
		req     *models.UpdateRequest
		wantErr error
	}{
		{"owner", &models.UpdateRequest{Actor: f.owner, ID: log.ID, Details: ptr("x")}, ErrAccessDenied},
		{"not the author", &models.UpdateRequest{Actor: otherGroomer, ID: log.ID, Details: ptr("x")}, ErrAccessDenied},
		{"empty", &models.UpdateRequest{Actor: f.groomer, ID: log.ID}, ErrInvalidInput},
		{"bad type", &models.UpdateRequest{Actor: f.groomer, ID: log.ID, ActivityType: ptr("DANCE")}, ErrInvalidInput},
		{"blank details", &models.UpdateRequest{Actor: f.groomer, ID: log.ID, Details: ptr(" ")}, ErrInvalidInput},
		{"unknown", &models.UpdateRequest{Actor: f.admin, ID: uuid.New(), Details: ptr("x")}, ErrActivityLogNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Update(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDelete(t *testing.T) {
	f := newFixture()
	log := f.logs.Seed(domain.ActivityLog{PetID: f.pet.ID, OwnerID: f.owner.ID, StaffID: f.groomer.ID,
		ActivityType: domain.ActivityNote, Details: "Calm", Timestamp: now})

	assert.ErrorIs(t, f.svc.Delete(context.Background(), log.ID, f.groomer), ErrAccessDenied)
	require.NoError(t, f.svc.Delete(context.Background(), log.ID, f.admin))
	assert.ErrorIs(t, f.svc.Delete(context.Background(), log.ID, f.admin), ErrActivityLogNotFound)
}
