package daycare

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PetCareService/pkg/pgerrors"
	"github.com/m04kA/SMC-PetCareService/pkg/psqlbuilder"
)

const (
	bookingsTable = "daycare_bookings"

	constraintActivePet = "daycare_bookings_active_pet"
)

var bookingColumns = []string{
	"id",
	"daycare_session_id",
	"pet_id",
	"owner_id",
	"room_id",
	"status",
	"created_at",
	"updated_at",
}

// CreateBooking создает бронирование дневного пребывания
func (r *Repository) CreateBooking(ctx context.Context, booking *domain.DaycareBooking) (*domain.DaycareBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(bookingsTable).
		Columns("daycare_session_id", "pet_id", "owner_id", "room_id", "status").
		Values(booking.SessionID, booking.PetID, booking.OwnerID, booking.RoomID, booking.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBooking - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		if pgerrors.IsUniqueViolation(err, constraintActivePet) {
			return nil, ErrPetAlreadyBooked
		}
		return nil, fmt.Errorf("%w: CreateBooking - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// GetBooking получает бронирование по ID
// В транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetBooking(ctx context.Context, id uuid.UUID) (*domain.DaycareBooking, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return r.getBooking(ctx, "GetBooking", selectBuilder)
}

// FindActiveBooking получает бронирование питомца на смену в статусе BOOKED или CHECKED_IN
func (r *Repository) FindActiveBooking(ctx context.Context, petID, sessionID uuid.UUID) (*domain.DaycareBooking, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{
			"pet_id":             petID,
			"daycare_session_id": sessionID,
			"status":             []string{string(domain.DaycareBooked), string(domain.DaycareCheckedIn)},
		}).
		Limit(1)

	return r.getBooking(ctx, "FindActiveBooking", selectBuilder)
}

func (r *Repository) getBooking(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) (*domain.DaycareBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %w", ErrScanRow, op, err)
	}

	return booking, nil
}

// ListBookings получает бронирования в области видимости scope, новые сначала
func (r *Repository) ListBookings(ctx context.Context, scope domain.ScopedQuery) ([]*domain.DaycareBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		OrderBy("created_at DESC")

	if ownerID, ok := scope.OwnerID(); ok {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"owner_id": ownerID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookings - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBookings - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.DaycareBooking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBookings - scan booking: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

// CountBookingsBySession считает все бронирования смены в любом статусе
func (r *Repository) CountBookingsBySession(ctx context.Context, sessionID uuid.UUID) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(bookingsTable).
		Where(squirrel.Eq{"daycare_session_id": sessionID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountBookingsBySession - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountBookingsBySession - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// UpdateBooking сохраняет статус и комнату бронирования
func (r *Repository) UpdateBooking(ctx context.Context, booking *domain.DaycareBooking) (*domain.DaycareBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(bookingsTable).
		Set("status", booking.Status).
		Set("room_id", booking.RoomID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateBooking - build update query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		if pgerrors.IsUniqueViolation(err, constraintActivePet) {
			return nil, ErrPetAlreadyBooked
		}
		return nil, fmt.Errorf("%w: UpdateBooking - execute update: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// DeleteBooking удаляет бронирование
func (r *Repository) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(bookingsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteBooking - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteBooking - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteBooking - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func scanBooking(row rowScanner) (*domain.DaycareBooking, error) {
	var booking domain.DaycareBooking
	var roomID uuid.NullUUID

	err := row.Scan(
		&booking.ID,
		&booking.SessionID,
		&booking.PetID,
		&booking.OwnerID,
		&roomID,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if roomID.Valid {
		booking.RoomID = &roomID.UUID
	}

	return &booking, nil
}

// GetRoom получает комнату по ID
func (r *Repository) GetRoom(ctx context.Context, id uuid.UUID) (*domain.DaycareRoom, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "capacity").
		From("daycare_rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRoom - build select query: %w", ErrBuildQuery, err)
	}

	var room domain.DaycareRoom
	err = executor.QueryRowContext(ctx, query, args...).Scan(&room.ID, &room.Name, &room.Capacity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoom - scan room: %w", ErrScanRow, err)
	}

	return &room, nil
}
