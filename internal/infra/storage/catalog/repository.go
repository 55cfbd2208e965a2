package catalog

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
	servicesTable       = "services"
	qualificationsTable = "staff_services"

	constraintServiceName = "services_name_key"
)

// Repository репозиторий справочных данных: услуги, специалисты и их квалификации
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочных данных
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetStaff получает пользователя по ID (с любой ролью)
func (r *Repository) GetStaff(ctx context.Context, id uuid.UUID) (*domain.StaffMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "role", "first_name", "last_name").
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStaff - build select query: %w", ErrBuildQuery, err)
	}

	var staff domain.StaffMember
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&staff.ID,
		&staff.Role,
		&staff.FirstName,
		&staff.LastName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaff - scan staff: %w", ErrScanRow, err)
	}

	return &staff, nil
}

// IsQualified проверяет наличие записи о квалификации специалиста для услуги
func (r *Repository) IsQualified(ctx context.Context, staffID, serviceID uuid.UUID) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From(qualificationsTable).
		Where(squirrel.Eq{"staff_id": staffID, "service_id": serviceID}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: IsQualified - build select query: %w", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsQualified - scan: %w", ErrScanRow, err)
	}

	return true, nil
}

// GetQualifiedStaff получает всех пользователей с квалификацией для услуги
// Роль не фильтруется: решение о допустимости роли принимает вызывающий код
func (r *Repository) GetQualifiedStaff(ctx context.Context, serviceID uuid.UUID) ([]*domain.StaffMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("u.id", "u.role", "u.first_name", "u.last_name").
		From("staff_services ss").
		Join("users u ON u.id = ss.staff_id").
		Where(squirrel.Eq{"ss.service_id": serviceID}).
		OrderBy("u.last_name ASC", "u.first_name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetQualifiedStaff - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetQualifiedStaff - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	staff := make([]*domain.StaffMember, 0)
	for rows.Next() {
		var member domain.StaffMember
		if err := rows.Scan(&member.ID, &member.Role, &member.FirstName, &member.LastName); err != nil {
			return nil, fmt.Errorf("%w: GetQualifiedStaff - scan staff: %w", ErrScanRow, err)
		}
		staff = append(staff, &member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetQualifiedStaff - rows error: %w", ErrScanRow, err)
	}

	return staff, nil
}

// AssignQualification добавляет квалификацию специалиста для услуги
// Повторное назначение не является ошибкой: возвращает false, если квалификация уже была
func (r *Repository) AssignQualification(ctx context.Context, staffID, serviceID uuid.UUID) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(qualificationsTable).
		Columns("staff_id", "service_id").
		Values(staffID, serviceID).
		Suffix("ON CONFLICT (staff_id, service_id) DO NOTHING").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: AssignQualification - build insert query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerrors.IsForeignKeyViolation(err) {
			return false, fmt.Errorf("%w: AssignQualification - %s", ErrReferenceNotFound, pgerrors.Constraint(err))
		}
		return false, fmt.Errorf("%w: AssignQualification - execute insert: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: AssignQualification - get rows affected: %w", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// RevokeQualification удаляет квалификацию специалиста для услуги
func (r *Repository) RevokeQualification(ctx context.Context, staffID, serviceID uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(qualificationsTable).
		Where(squirrel.Eq{"staff_id": staffID, "service_id": serviceID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: RevokeQualification - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: RevokeQualification - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: RevokeQualification - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrQualificationNotFound
	}

	return nil
}
