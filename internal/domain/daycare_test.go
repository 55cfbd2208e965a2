package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaycareCounterDelta(t *testing.T) {
	tests := []struct {
		from, to  DaycareBookingStatus
		wantDelta int
		wantErr   bool
	}{
		{DaycareBooked, DaycareCheckedIn, 0, false},
		{DaycareBooked, DaycareCancelled, -1, false},
		{DaycareCheckedIn, DaycareCheckedOut, -1, false},
		{DaycareCheckedIn, DaycareCancelled, -1, false},
		{DaycareCancelled, DaycareBooked, 1, false},
		{DaycareCancelled, DaycareCheckedIn, 1, false},
		{DaycareBooked, DaycareBooked, 0, false},
		{DaycareCancelled, DaycareCancelled, 0, false},
		{DaycareCheckedOut, DaycareCheckedOut, 0, false},
		{DaycareBooked, DaycareCheckedOut, 0, true},
		{DaycareCheckedOut, DaycareBooked, 0, true},
		{DaycareCheckedOut, DaycareCancelled, 0, true},
		{DaycareCheckedIn, DaycareBooked, 0, true},
		{DaycareCancelled, DaycareCheckedOut, 0, true},
		{DaycareBooked, DaycareBookingStatus("LOST"), 0, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			delta, err := DaycareCounterDelta(tt.from, tt.to)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadRequest)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDelta, delta)
		})
	}
}

// Counter equals the number of seat-holding bookings after any sequence of allowed operations.
func TestDaycareCounterConservation(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	statuses := []DaycareBookingStatus{DaycareBooked, DaycareCheckedIn, DaycareCheckedOut, DaycareCancelled}
	session := &DaycareSession{TotalCapacity: 5, Status: SessionAvailable}

	var bookings []DaycareBookingStatus
	counter := 0

	for i := 0; i < 2000; i++ {
		switch op := rng.Intn(3); {
		case op == 0:
			if session.StatusFor(counter) != SessionFull {
				bookings = append(bookings, DaycareBooked)
				counter++
			}
		case op == 1 && len(bookings) > 0:
			idx := rng.Intn(len(bookings))
			to := statuses[rng.Intn(len(statuses))]
			delta, err := DaycareCounterDelta(bookings[idx], to)
			if err != nil {
				continue
			}
			if delta > 0 && counter >= session.TotalCapacity {
				continue
			}
			bookings[idx] = to
			counter += delta
		case op == 2 && len(bookings) > 0:
			idx := rng.Intn(len(bookings))
			counter += DaycareDeletionDelta(bookings[idx])
			bookings = append(bookings[:idx], bookings[idx+1:]...)
		}

		holding := 0
		for _, s := range bookings {
			if s.HoldsSeat() {
				holding++
			}
		}
		require.Equal(t, holding, counter)
		require.GreaterOrEqual(t, counter, 0)
		require.LessOrEqual(t, counter, session.TotalCapacity)
	}
}

func TestDaycareSessionStatusFor(t *testing.T) {
	s := &DaycareSession{TotalCapacity: 2, Status: SessionAvailable}
	assert.Equal(t, SessionAvailable, s.StatusFor(1))
	assert.Equal(t, SessionFull, s.StatusFor(2))

	s.Status = SessionClosed
	assert.Equal(t, SessionClosed, s.StatusFor(0))
	assert.False(t, s.IsBookable())
}

func TestDaycareDeletionDelta(t *testing.T) {
	assert.Equal(t, -1, DaycareDeletionDelta(DaycareBooked))
	assert.Equal(t, -1, DaycareDeletionDelta(DaycareCheckedIn))
	assert.Equal(t, 0, DaycareDeletionDelta(DaycareCheckedOut))
	assert.Equal(t, 0, DaycareDeletionDelta(DaycareCancelled))
}
