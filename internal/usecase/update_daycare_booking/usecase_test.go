package update_daycare_booking

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/testutil"
	"github.com/m04kA/SMC-PetCareService/pkg/logger"
	"github.com/m04kA/SMC-PetCareService/pkg/ptr"
)

type fixture struct {
	daycare  *testutil.Daycare
	recorder *testutil.Recorder
	uc       *UseCase

	owner   domain.Actor
	admin   domain.Actor
	session *domain.DaycareSession
}

func newFixture(t *testing.T, capacity int) *fixture {
	t.Helper()

	f := &fixture{
		daycare:  &testutil.Daycare{},
		recorder: &testutil.Recorder{},
		owner:    domain.Actor{ID: uuid.New(), Role: domain.RoleOwner},
		admin:    domain.Actor{ID: uuid.New(), Role: domain.RoleAdmin},
	}
	f.uc = NewUseCase(f.daycare, &testutil.TxManager{}, f.recorder, logger.NewNop())
	f.session = f.daycare.SeedSession(domain.DaycareSession{
		Date:          time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		TotalCapacity: capacity,
		Price:         25,
		Status:        domain.SessionAvailable,
	})

	return f
}

// seed stores a booking of the fixture owner and keeps the session counter consistent with it.
func (f *fixture) seed(t *testing.T, status domain.DaycareBookingStatus) *domain.DaycareBooking {
	t.Helper()
	b := f.daycare.SeedBooking(domain.DaycareBooking{
		SessionID: f.session.ID,
		PetID:     uuid.New(),
		OwnerID:   f.owner.ID,
		Status:    status,
	})
	if status.HoldsSeat() {
		_, err := f.daycare.AdjustCurrentBookings(context.Background(), f.session.ID, 1)
		require.NoError(t, err)
	}
	return b
}

func (f *fixture) counter(t *testing.T) *domain.DaycareSession {
	t.Helper()
	s, err := f.daycare.GetSession(context.Background(), f.session.ID)
	require.NoError(t, err)
	return s
}

func status(s domain.DaycareBookingStatus) *string {
	return ptr.Ptr(string(s))
}

func TestExecute_StatusTransitions(t *testing.T) {
	tests := []struct {
		from, to    domain.DaycareBookingStatus
		wantCounter int
		wantErr     error
	}{
		{domain.DaycareBooked, domain.DaycareCheckedIn, 1, nil},
		{domain.DaycareBooked, domain.DaycareCancelled, 0, nil},
		{domain.DaycareCheckedIn, domain.DaycareCheckedOut, 0, nil},
		{domain.DaycareCheckedIn, domain.DaycareCancelled, 0, nil},
		{domain.DaycareCancelled, domain.DaycareBooked, 1, nil},
		{domain.DaycareCancelled, domain.DaycareCheckedIn, 1, nil},
		{domain.DaycareBooked, domain.DaycareCheckedOut, 1, domain.ErrDaycareTransitionRejected},
		{domain.DaycareCheckedOut, domain.DaycareBooked, 0, domain.ErrDaycareTransitionRejected},
		{domain.DaycareCheckedIn, domain.DaycareBooked, 1, domain.ErrDaycareTransitionRejected},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			f := newFixture(t, 3)
			b := f.seed(t, tt.from)

			resp, err := f.uc.Execute(context.Background(), &Request{Actor: f.admin, BookingID: b.ID, Status: status(tt.to)})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, domain.ErrBadRequest)
				assert.Empty(t, f.recorder.Transitions)
			} else {
				require.NoError(t, err)
				assert.Equal(t, string(tt.to), resp.Status)
				assert.Equal(t, []string{string(tt.from) + "->" + string(tt.to)}, f.recorder.Transitions)
			}

			assert.Equal(t, tt.wantCounter, f.counter(t).CurrentBookings)
			assert.Equal(t, f.daycare.HoldingSeats(f.session.ID), f.counter(t).CurrentBookings)
		})
	}
}

func TestExecute_CancelFreesSeatOfFullSession(t *testing.T) {
	f := newFixture(t, 1)
	b := f.seed(t, domain.DaycareBooked)
	require.Equal(t, domain.SessionFull, f.counter(t).Status)

	_, err := f.uc.Execute(context.Background(), &Request{Actor: f.owner, BookingID: b.ID, Status: status(domain.DaycareCancelled)})
	require.NoError(t, err)

	s := f.counter(t)
	assert.Equal(t, 0, s.CurrentBookings)
	assert.Equal(t, domain.SessionAvailable, s.Status)
}

func TestExecute_RestoreRequiresFreeSeat(t *testing.T) {
	f := newFixture(t, 1)
	cancelled := f.seed(t, domain.DaycareCancelled)
	f.seed(t, domain.DaycareBooked)

	_, err := f.uc.Execute(context.Background(), &Request{Actor: f.admin, BookingID: cancelled.ID, Status: status(domain.DaycareBooked)})
	require.ErrorIs(t, err, ErrSessionUnavailable)
	assert.Equal(t, 1, f.counter(t).CurrentBookings)
}

func TestExecute_RestoreRejectsDuplicate(t *testing.T) {
	f := newFixture(t, 3)
	cancelled := f.seed(t, domain.DaycareCancelled)
	f.daycare.SeedBooking(domain.DaycareBooking{
		SessionID: f.session.ID,
		PetID:     cancelled.PetID,
		OwnerID:   f.owner.ID,
		Status:    domain.DaycareBooked,
	})

	_, err := f.uc.Execute(context.Background(), &Request{Actor: f.admin, BookingID: cancelled.ID, Status: status(domain.DaycareBooked)})
	require.ErrorIs(t, err, ErrAlreadyBooked)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestExecute_RoomChange(t *testing.T) {
	f := newFixture(t, 3)
	b := f.seed(t, domain.DaycareBooked)
	room := f.daycare.AddRoom("Sunny", 4)

	resp, err := f.uc.Execute(context.Background(), &Request{Actor: f.admin, BookingID: b.ID, RoomID: &room.ID})
	require.NoError(t, err)
	require.NotNil(t, resp.RoomID)
	assert.Equal(t, room.ID, *resp.RoomID)
	assert.Equal(t, 1, f.counter(t).CurrentBookings)
	assert.Empty(t, f.recorder.Transitions)

	_, err = f.uc.Execute(context.Background(), &Request{Actor: f.admin, BookingID: b.ID, RoomID: ptr.Ptr(uuid.New())})
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestExecute_OwnerRules(t *testing.T) {
	f := newFixture(t, 3)
	booked := f.seed(t, domain.DaycareBooked)
	checkedIn := f.seed(t, domain.DaycareCheckedIn)
	cancelled := f.seed(t, domain.DaycareCancelled)
	stranger := domain.Actor{ID: uuid.New(), Role: domain.RoleOwner}

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{
			name:    "check in",
			req:     &Request{Actor: f.owner, BookingID: booked.ID, Status: status(domain.DaycareCheckedIn)},
			wantErr: ErrOwnerMayOnlyCancel,
		},
		{
			name:    "room change",
			req:     &Request{Actor: f.owner, BookingID: booked.ID, RoomID: ptr.Ptr(uuid.New())},
			wantErr: ErrOwnerMayOnlyCancel,
		},
		{
			name:    "foreign booking",
			req:     &Request{Actor: stranger, BookingID: booked.ID, Status: status(domain.DaycareCancelled)},
			wantErr: ErrAccessDenied,
		},
		{
			name:    "cancel checked in",
			req:     &Request{Actor: f.owner, BookingID: checkedIn.ID, Status: status(domain.DaycareCancelled)},
			wantErr: ErrOwnerCancelNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// Repeated cancel is a no-op
	_, err := f.uc.Execute(context.Background(), &Request{Actor: f.owner, BookingID: cancelled.ID, Status: status(domain.DaycareCancelled)})
	require.NoError(t, err)
	assert.Equal(t, 2, f.counter(t).CurrentBookings)
	assert.Empty(t, f.recorder.Transitions)
}

func TestExecute_InvalidRequest(t *testing.T) {
	f := newFixture(t, 3)
	b := f.seed(t, domain.DaycareBooked)

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{"no booking id", &Request{Actor: f.admin, Status: status(domain.DaycareCancelled)}, ErrInvalidInput},
		{"empty update", &Request{Actor: f.admin, BookingID: b.ID}, ErrEmptyUpdate},
		{"unknown status", &Request{Actor: f.admin, BookingID: b.ID, Status: ptr.Ptr("LOST")}, domain.ErrInvalidDaycareStatus},
		{"unknown booking", &Request{Actor: f.admin, BookingID: uuid.New(), Status: status(domain.DaycareCancelled)}, ErrBookingNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// Counter equals the number of seat-holding bookings after any sequence of status changes.
func TestExecute_CounterConservation(t *testing.T) {
	f := newFixture(t, 4)
	statuses := []domain.DaycareBookingStatus{
		domain.DaycareBooked, domain.DaycareCheckedIn, domain.DaycareCheckedOut, domain.DaycareCancelled,
	}

	var bookings []*domain.DaycareBooking
	for i := 0; i < 4; i++ {
		bookings = append(bookings, f.seed(t, domain.DaycareBooked))
	}
	for i := 0; i < 3; i++ {
		bookings = append(bookings, f.seed(t, domain.DaycareCancelled))
	}

	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 300; i++ {
		b := bookings[rng.Intn(len(bookings))]
		to := statuses[rng.Intn(len(statuses))]

		_, _ = f.uc.Execute(context.Background(), &Request{Actor: f.admin, BookingID: b.ID, Status: status(to)})

		s := f.counter(t)
		require.Equal(t, f.daycare.HoldingSeats(f.session.ID), s.CurrentBookings)
		require.LessOrEqual(t, s.CurrentBookings, s.TotalCapacity)
	}
}
