package appointment

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
	tableName = "appointments"

	// Ограничения, которыми БД защищает специалиста от двойной записи
	constraintUniqueSlot = "unique_staff_time_slot"
	constraintNoOverlap  = "appointments_no_overlap"
)

var columns = []string{
	"id",
	"owner_id",
	"pet_id",
	"service_id",
	"staff_id",
	"date_time",
	"duration_minutes",
	"status",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с записями на услуги
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись
// end_time денормализуется из date_time и duration_minutes, чтобы исключающее ограничение
// appointments_no_overlap могло проверять пересечения интервалов на уровне БД.
func (r *Repository) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"owner_id",
			"pet_id",
			"service_id",
			"staff_id",
			"date_time",
			"duration_minutes",
			"end_time",
			"status",
			"notes",
		).
		Values(
			appointment.OwnerID,
			appointment.PetID,
			appointment.ServiceID,
			appointment.StaffID,
			appointment.DateTime,
			appointment.DurationMinutes,
			appointment.EndTime(),
			appointment.Status,
			appointment.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appointment.ID,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)
	if err != nil {
		if isSlotViolation(err) {
			return nil, fmt.Errorf("%w: Create - %s", ErrSlotNotAvailable, pgerrors.Constraint(err))
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return appointment, nil
}

// GetByID получает запись по ID
// В транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	appointment, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return appointment, nil
}

// List получает записи с фильтрацией
// Поддерживает фильтрацию по:
// - Области видимости (Scope) - все записи или записи владельца
// - Специалисту (StaffID)
// - Интервалу (From, To) - записи, пересекающиеся с [From, To)
// - Статусу (Status) или исключению неактивных (IncludeInactive)
// - Исключению одной записи (ExcludeID) - для переноса записи
//
// Если запрос выполняется в транзакции и указан специалист, строки блокируются (FOR UPDATE),
// чтобы проверка пересечений и вставка шли по зафиксированному состоянию.
func (r *Repository) List(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).From(tableName)

	if ownerID, ok := filter.Scope.OwnerID(); ok {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"owner_id": ownerID})
	}
	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *filter.StaffID})
	}

	// Пересечение полуоткрытых интервалов: date_time < To AND end_time > From
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"date_time": *filter.To})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_time": *filter.From})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactive := make([]string, len(domain.InactiveAppointmentStatuses))
		for i, s := range domain.InactiveAppointmentStatuses {
			inactive[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactive})
	}

	if filter.ExcludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *filter.ExcludeID})
	}

	selectBuilder = selectBuilder.OrderBy("date_time ASC")

	if dbmetrics.IsInTransaction(ctx) && filter.StaffID != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan appointment: %w", ErrScanRow, err)
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}

// Update сохраняет изменяемые поля записи: специалиста, время, длительность, статус и заметки
func (r *Repository) Update(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("staff_id", appointment.StaffID).
		Set("date_time", appointment.DateTime).
		Set("duration_minutes", appointment.DurationMinutes).
		Set("end_time", appointment.EndTime()).
		Set("status", appointment.Status).
		Set("notes", appointment.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": appointment.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&appointment.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		if isSlotViolation(err) {
			return nil, fmt.Errorf("%w: Update - %s", ErrSlotNotAvailable, pgerrors.Constraint(err))
		}
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return appointment, nil
}

// UpdateStatus обновляет статус записи
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isSlotViolation(err) {
			return fmt.Errorf("%w: UpdateStatus - %s", ErrSlotNotAvailable, pgerrors.Constraint(err))
		}
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appointment domain.Appointment
	var notes sql.NullString

	err := row.Scan(
		&appointment.ID,
		&appointment.OwnerID,
		&appointment.PetID,
		&appointment.ServiceID,
		&appointment.StaffID,
		&appointment.DateTime,
		&appointment.DurationMinutes,
		&appointment.Status,
		&notes,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if notes.Valid {
		appointment.Notes = &notes.String
	}

	return &appointment, nil
}

func isSlotViolation(err error) bool {
	return pgerrors.IsUniqueViolation(err, constraintUniqueSlot) ||
		pgerrors.IsExclusionViolation(err, constraintNoOverlap)
}
