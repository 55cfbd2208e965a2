package daycare

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/service/daycare/models"
	"github.com/m04kA/SMC-PetCareService/internal/testutil"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
	"github.com/m04kA/SMC-PetCareService/pkg/ptr"
)

var march10 = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

type fixture struct {
	repo     *testutil.Daycare
	recorder *testutil.Recorder
	svc      *Service

	owner domain.Actor
	admin domain.Actor
	staff domain.Actor
}

func newFixture() *fixture {
	f := &fixture{
		repo:     &testutil.Daycare{},
		recorder: &testutil.Recorder{},
		owner:    domain.Actor{ID: uuid.New(), Role: domain.RoleOwner},
		admin:    domain.Actor{ID: uuid.New(), Role: domain.RoleAdmin},
		staff:    domain.Actor{ID: uuid.New(), Role: domain.RoleClinicStaff},
	}
	f.svc = NewService(f.repo, &testutil.TxManager{}, f.recorder, logger.NewNop())
	return f
}

func (f *fixture) session(t *testing.T, id uuid.UUID) *domain.DaycareSession {
	t.Helper()
	s, err := f.repo.GetSession(context.Background(), id)
	require.NoError(t, err)
	return s
}

func TestCreateSession(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.CreateSession(context.Background(), &models.CreateSessionRequest{
		Actor: f.admin, Date: march10, TotalCapacity: 10, Price: 25,
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10", resp.Date)
	assert.Equal(t, string(domain.SessionAvailable), resp.Status)
	assert.Equal(t, 0, resp.CurrentBookings)
	assert.Equal(t, 10, resp.AvailableSpots)

	_, err = f.svc.CreateSession(context.Background(), &models.CreateSessionRequest{
		Actor: f.admin, Date: march10, TotalCapacity: 5, Price: 25,
	})
	assert.ErrorIs(t, err, ErrSessionDateTaken)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestCreateSession_Rejections(t *testing.T) {
	f := newFixture()

	tests := []struct {
		name    string
		req     *models.CreateSessionRequest
		wantErr error
	}{
		{"owner", &models.CreateSessionRequest{Actor: f.owner, Date: march10, TotalCapacity: 5, Price: 10}, ErrAccessDenied},
		{"staff", &models.CreateSessionRequest{Actor: f.staff, Date: march10, TotalCapacity: 5, Price: 10}, ErrAccessDenied},
		{"no date", &models.CreateSessionRequest{Actor: f.admin, TotalCapacity: 5, Price: 10}, ErrInvalidInput},
		{"zero capacity", &models.CreateSessionRequest{Actor: f.admin, Date: march10, TotalCapacity: 0, Price: 10}, ErrInvalidInput},
		{"free", &models.CreateSessionRequest{Actor: f.admin, Date: march10, TotalCapacity: 5, Price: 0}, ErrInvalidInput},
		{"unknown status", &models.CreateSessionRequest{Actor: f.admin, Date: march10, TotalCapacity: 5, Price: 10, Status: ptr.Ptr("OPEN")}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateSession(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestOwnerSeesOnlyBookableSessions(t *testing.T) {
	f := newFixture()
	open := f.repo.SeedSession(domain.DaycareSession{Date: march10, TotalCapacity: 2, CurrentBookings: 1, Price: 20})
	full := f.repo.SeedSession(domain.DaycareSession{Date: march10.AddDate(0, 0, 1), TotalCapacity: 2, CurrentBookings: 2, Price: 20, Status: domain.SessionFull})
	closed := f.repo.SeedSession(domain.DaycareSession{Date: march10.AddDate(0, 0, 2), TotalCapacity: 2, Price: 20, Status: domain.SessionClosed})

	list, err := f.svc.ListSessions(context.Background(), f.owner)
	require.NoError(t, err)
	require.Len(t, list.Sessions, 1)
	assert.Equal(t, open.ID, list.Sessions[0].ID)

	list, err = f.svc.ListSessions(context.Background(), f.staff)
	require.NoError(t, err)
	assert.Len(t, list.Sessions, 3)

	for _, id := range []uuid.UUID{full.ID, closed.ID} {
		_, err = f.svc.GetSession(context.Background(), id, f.owner)
		assert.ErrorIs(t, err, ErrSessionNotFound)

		_, err = f.svc.GetSession(context.Background(), id, f.admin)
		assert.NoError(t, err)
	}
}

func TestUpdateSession(t *testing.T) {
	f := newFixture()
	s := f.repo.SeedSession(domain.DaycareSession{Date: march10, TotalCapacity: 3, CurrentBookings: 2, Price: 20})
	f.repo.SeedSession(domain.DaycareSession{Date: march10.AddDate(0, 0, 1), TotalCapacity: 3, Price: 20})

	// Shrinking to the current count fills the session
	resp, err := f.svc.UpdateSession(context.Background(), &models.UpdateSessionRequest{
		Actor: f.admin, SessionID: s.ID, TotalCapacity: ptr.Ptr(2),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.SessionFull), resp.Status)

	_, err = f.svc.UpdateSession(context.Background(), &models.UpdateSessionRequest{
		Actor: f.admin, SessionID: s.ID, TotalCapacity: ptr.Ptr(1),
	})
	assert.ErrorIs(t, err, ErrCapacityBelowBookings)

	_, err = f.svc.UpdateSession(context.Background(), &models.UpdateSessionRequest{
		Actor: f.admin, SessionID: s.ID, Date: ptr.Ptr(march10.AddDate(0, 0, 1)),
	})
	assert.ErrorIs(t, err, ErrSessionDateTaken)

	resp, err = f.svc.UpdateSession(context.Background(), &models.UpdateSessionRequest{
		Actor: f.admin, SessionID: s.ID, Status: ptr.Ptr(string(domain.SessionClosed)), TotalCapacity: ptr.Ptr(5),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.SessionClosed), resp.Status)

	resp, err = f.svc.UpdateSession(context.Background(), &models.UpdateSessionRequest{
		Actor: f.admin, SessionID: s.ID, Status: ptr.Ptr(string(domain.SessionAvailable)),
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.SessionAvailable), resp.Status)
	assert.Equal(t, 5, f.session(t, s.ID).TotalCapacity)

	_, err = f.svc.UpdateSession(context.Background(), &models.UpdateSessionRequest{
		Actor: f.owner, SessionID: s.ID, Price: ptr.Ptr(30.0),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.UpdateSession(context.Background(), &models.UpdateSessionRequest{
		Actor: f.admin, SessionID: s.ID, Price: ptr.Ptr(-1.0),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.UpdateSession(context.Background(), &models.UpdateSessionRequest{Actor: f.admin, SessionID: s.ID})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteSession(t *testing.T) {
	f := newFixture()
	empty := f.repo.SeedSession(domain.DaycareSession{Date: march10, TotalCapacity: 3, Price: 20})
	used := f.repo.SeedSession(domain.DaycareSession{Date: march10.AddDate(0, 0, 1), TotalCapacity: 3, Price: 20})
	f.repo.SeedBooking(domain.DaycareBooking{SessionID: used.ID, PetID: uuid.New(), OwnerID: f.owner.ID, Status: domain.DaycareCancelled})

	assert.ErrorIs(t, f.svc.DeleteSession(context.Background(), used.ID, f.admin), ErrSessionHasBookings)
	assert.ErrorIs(t, f.svc.DeleteSession(context.Background(), empty.ID, f.owner), ErrAccessDenied)
	require.NoError(t, f.svc.DeleteSession(context.Background(), empty.ID, f.admin))
	assert.ErrorIs(t, f.svc.DeleteSession(context.Background(), empty.ID, f.admin), ErrSessionNotFound)
}

func TestBookingsReadSide(t *testing.T) {
	f := newFixture()
	s := f.repo.SeedSession(domain.DaycareSession{Date: march10, TotalCapacity: 3, Price: 20})
	own := f.repo.SeedBooking(domain.DaycareBooking{SessionID: s.ID, PetID: uuid.New(), OwnerID: f.owner.ID, Status: domain.DaycareBooked})
	foreign := f.repo.SeedBooking(domain.DaycareBooking{SessionID: s.ID, PetID: uuid.New(), OwnerID: uuid.New(), Status: domain.DaycareBooked})

	list, err := f.svc.ListBookings(context.Background(), f.owner)
	require.NoError(t, err)
	require.Len(t, list.Bookings, 1)
	assert.Equal(t, own.ID, list.Bookings[0].ID)

	list, err = f.svc.ListBookings(context.Background(), f.staff)
	require.NoError(t, err)
	assert.Len(t, list.Bookings, 2)

	_, err = f.svc.GetBooking(context.Background(), foreign.ID, f.owner)
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := f.svc.GetBooking(context.Background(), foreign.ID, f.staff)
	require.NoError(t, err)
	assert.Equal(t, foreign.OwnerID, resp.OwnerID)

	_, err = f.svc.GetBooking(context.Background(), uuid.New(), f.admin)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestDeleteBooking(t *testing.T) {
	f := newFixture()
	s := f.repo.SeedSession(domain.DaycareSession{Date: march10, TotalCapacity: 2, CurrentBookings: 2, Price: 20, Status: domain.SessionFull})
	booked := f.repo.SeedBooking(domain.DaycareBooking{SessionID: s.ID, PetID: uuid.New(), OwnerID: f.owner.ID, Status: domain.DaycareBooked})
	checkedIn := f.repo.SeedBooking(domain.DaycareBooking{SessionID: s.ID, PetID: uuid.New(), OwnerID: f.owner.ID, Status: domain.DaycareCheckedIn})
	cancelled := f.repo.SeedBooking(domain.DaycareBooking{SessionID: s.ID, PetID: uuid.New(), OwnerID: f.owner.ID, Status: domain.DaycareCancelled})

	assert.ErrorIs(t, f.svc.DeleteBooking(context.Background(), booked.ID, f.staff), ErrAccessDenied)
	assert.ErrorIs(t, f.svc.DeleteBooking(context.Background(), booked.ID, domain.Actor{ID: uuid.New(), Role: domain.RoleOwner}), ErrAccessDenied)
	assert.ErrorIs(t, f.svc.DeleteBooking(context.Background(), checkedIn.ID, f.owner), ErrBookingNotDeletable)

	require.NoError(t, f.svc.DeleteBooking(context.Background(), booked.ID, f.owner))
	current := f.session(t, s.ID)
	assert.Equal(t, 1, current.CurrentBookings)
	assert.Equal(t, domain.SessionAvailable, current.Status)

	require.NoError(t, f.svc.DeleteBooking(context.Background(), cancelled.ID, f.admin))
	assert.Equal(t, 1, f.session(t, s.ID).CurrentBookings)

	require.NoError(t, f.svc.DeleteBooking(context.Background(), checkedIn.ID, f.admin))
	assert.Equal(t, 0, f.session(t, s.ID).CurrentBookings)
	assert.Equal(t, f.repo.HoldingSeats(s.ID), f.session(t, s.ID).CurrentBookings)

	assert.Equal(t, []string{"BOOKED->DELETED", "CANCELLED->DELETED", "CHECKED_IN->DELETED"}, f.recorder.Transitions)
}
