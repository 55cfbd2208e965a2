package daycare

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/internal/testutil/sqlstub"
)

func sessionRow(id uuid.UUID, capacity, current int, status domain.DaycareSessionStatus) []driver.Value {
	now := time.Now()
	return []driver.Value{
		id.String(),
		time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC),
		int64(capacity),
		int64(current),
		45.5,
		string(status),
		now,
		now,
	}
}

func TestAdjustCurrentBookings(t *testing.T) {
	id := uuid.New()

	t.Run("within bounds", func(t *testing.T) {
		db, stub := sqlstub.Open(t, sqlstub.Response{
			Columns: sessionColumns,
			Rows:    [][]driver.Value{sessionRow(id, 2, 2, domain.SessionFull)},
		})

		session, err := NewRepository(db).AdjustCurrentBookings(context.Background(), id, 1)
		require.NoError(t, err)
		assert.Equal(t, 2, session.CurrentBookings)
		assert.Equal(t, domain.SessionFull, session.Status)

		query := stub.Statements()[0].Query
		assert.Contains(t, query, "current_bookings = current_bookings +")
		assert.Contains(t, query, "BETWEEN 0 AND total_capacity")
	})

	t.Run("out of bounds", func(t *testing.T) {
		db, stub := sqlstub.Open(t,
			sqlstub.Response{Columns: sessionColumns},
			sqlstub.Response{
				Columns: sessionColumns,
				Rows:    [][]driver.Value{sessionRow(id, 2, 2, domain.SessionFull)},
			},
		)

		_, err := NewRepository(db).AdjustCurrentBookings(context.Background(), id, 1)
		assert.ErrorIs(t, err, ErrCapacityExceeded)
		assert.Zero(t, stub.Pending())
	})

	t.Run("missing session", func(t *testing.T) {
		db, _ := sqlstub.Open(t,
			sqlstub.Response{Columns: sessionColumns},
			sqlstub.Response{Columns: sessionColumns},
		)

		_, err := NewRepository(db).AdjustCurrentBookings(context.Background(), id, -1)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestCreateSession_DateTaken(t *testing.T) {
	db, _ := sqlstub.Open(t, sqlstub.Response{Err: &pq.Error{Code: "23505", Constraint: constraintSessionDate}})

	_, err := NewRepository(db).CreateSession(context.Background(), &domain.DaycareSession{
		Date:          time.Date(2030, 5, 1, 0, 0, 0, 0, time.UTC),
		TotalCapacity: 3,
		Price:         40,
		Status:        domain.SessionAvailable,
	})
	assert.ErrorIs(t, err, ErrSessionDateTaken)
}

func TestBookings_ActivePetViolation(t *testing.T) {
	violation := &pq.Error{Code: "23505", Constraint: constraintActivePet}
	booking := func() *domain.DaycareBooking {
		return &domain.DaycareBooking{
			ID:        uuid.New(),
			SessionID: uuid.New(),
			PetID:     uuid.New(),
			OwnerID:   uuid.New(),
			Status:    domain.DaycareBooked,
		}
	}

	t.Run("create", func(t *testing.T) {
		db, _ := sqlstub.Open(t, sqlstub.Response{Err: violation})

		_, err := NewRepository(db).CreateBooking(context.Background(), booking())
		assert.ErrorIs(t, err, ErrPetAlreadyBooked)
	})

	t.Run("update", func(t *testing.T) {
		db, _ := sqlstub.Open(t, sqlstub.Response{Err: violation})

		_, err := NewRepository(db).UpdateBooking(context.Background(), booking())
		assert.ErrorIs(t, err, ErrPetAlreadyBooked)
	})

	t.Run("other failure", func(t *testing.T) {
		db, _ := sqlstub.Open(t, sqlstub.Response{Err: &pq.Error{Code: "23503"}})

		_, err := NewRepository(db).CreateBooking(context.Background(), booking())
		assert.ErrorIs(t, err, ErrExecQuery)
	})
}
