package activitylog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PetCareService/pkg/pgerrors"
	"github.com/m04kA/SMC-PetCareService/pkg/psqlbuilder"
)

const tableName = "activity_logs"

var columns = []string{
	"id",
	"pet_id",
	"owner_id",
	"staff_id",
	"activity_type",
	"details",
	"daycare_booking_id",
	"appointment_id",
	"timestamp",
	"updated_at",
}

// Repository репозиторий журнала активностей питомцев
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись журнала
func (r *Repository) Create(ctx context.Context, log *domain.ActivityLog) (*domain.ActivityLog, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"pet_id",
			"owner_id",
			"staff_id",
			"activity_type",
			"details",
			"daycare_booking_id",
			"appointment_id",
			"timestamp",
		).
		Values(
			log.PetID,
			log.OwnerID,
			log.StaffID,
			log.ActivityType,
			log.Details,
			log.DaycareBookingID,
			log.AppointmentID,
			log.Timestamp,
		).
		Suffix("RETURNING id, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&log.ID, &log.UpdatedAt)
	if err != nil {
		if pgerrors.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: Create - %s", ErrReferenceNotFound, pgerrors.Constraint(err))
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return log, nil
}

// GetByID получает запись журнала по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ActivityLog, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	log, err := scanActivityLog(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrActivityLogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan activity log: %w", ErrScanRow, err)
	}

	return log, nil
}

// List получает записи журнала, новые первыми
// Поддерживает фильтрацию по области видимости, питомцу, бронированию и записи на услугу
func (r *Repository) List(ctx context.Context, filter domain.ActivityLogFilter) ([]*domain.ActivityLog, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(tableName)

	if ownerID, ok := filter.Scope.OwnerID(); ok {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"owner_id": ownerID})
	}
	if filter.PetID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"pet_id": *filter.PetID})
	}
	if filter.DaycareBookingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"daycare_booking_id": *filter.DaycareBookingID})
	}
	if filter.AppointmentID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"appointment_id": *filter.AppointmentID})
	}

	query, args, err := selectBuilder.OrderBy("timestamp DESC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	logs := make([]*domain.ActivityLog, 0)
	for rows.Next() {
		log, err := scanActivityLog(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan activity log: %w", ErrScanRow, err)
		}
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return logs, nil
}

// Update сохраняет тип активности и описание
func (r *Repository) Update(ctx context.Context, log *domain.ActivityLog) (*domain.ActivityLog, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("activity_type", log.ActivityType).
		Set("details", log.Details).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": log.ID}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	updated, err := scanActivityLog(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrActivityLogNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return updated, nil
}

// Delete удаляет запись журнала
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrActivityLogNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanActivityLog(row rowScanner) (*domain.ActivityLog, error) {
	var log domain.ActivityLog
	var bookingID, appointmentID uuid.NullUUID

	err := row.Scan(
		&log.ID,
		&log.PetID,
		&log.OwnerID,
		&log.StaffID,
		&log.ActivityType,
		&log.Details,
		&bookingID,
		&appointmentID,
		&log.Timestamp,
		&log.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if bookingID.Valid {
		log.DaycareBookingID = &bookingID.UUID
	}
	if appointmentID.Valid {
		log.AppointmentID = &appointmentID.UUID
	}

	return &log, nil
}
