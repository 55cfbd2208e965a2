package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PetCareService/pkg/pgerrors"
	"github.com/m04kA/SMC-PetCareService/pkg/psqlbuilder"
)

const tableName = "staff_availability"

// Repository репозиторий окон доступности специалистов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория окон доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает окно доступности
func (r *Repository) Create(ctx context.Context, block *domain.StaffAvailabilityBlock) (*domain.StaffAvailabilityBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("staff_id", "start_time", "end_time").
		Values(block.StaffID, block.StartTime, block.EndTime).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&block.ID, &block.CreatedAt)
	if err != nil {
		if pgerrors.IsCheckViolation(err, "staff_availability_interval") {
			return nil, ErrInvalidInterval
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return block, nil
}

// GetByID получает окно доступности по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.StaffAvailabilityBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "staff_id", "start_time", "end_time", "created_at").
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var block domain.StaffAvailabilityBlock
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&block.ID,
		&block.StaffID,
		&block.StartTime,
		&block.EndTime,
		&block.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlockNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan block: %w", ErrScanRow, err)
	}

	return &block, nil
}

// ListByStaff получает окна специалиста, пересекающиеся с [from, to), отсортированные по началу
func (r *Repository) ListByStaff(ctx context.Context, staffID uuid.UUID, from, to time.Time) ([]*domain.StaffAvailabilityBlock, error) {
	return r.list(ctx, "ListByStaff", squirrel.And{
		squirrel.Eq{"staff_id": staffID},
		squirrel.Lt{"start_time": to},
		squirrel.Gt{"end_time": from},
	})
}

// FindCovering находит окно специалиста, полностью покрывающее [start, end)
func (r *Repository) FindCovering(ctx context.Context, staffID uuid.UUID, start, end time.Time) (*domain.StaffAvailabilityBlock, error) {
	blocks, err := r.list(ctx, "FindCovering", squirrel.And{
		squirrel.Eq{"staff_id": staffID},
		squirrel.LtOrEq{"start_time": start},
		squirrel.GtOrEq{"end_time": end},
	})
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, ErrBlockNotFound
	}
	return blocks[0], nil
}

// Delete удаляет окно доступности
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
		return ErrBlockNotFound
	}

	return nil
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Sqlizer) ([]*domain.StaffAvailabilityBlock, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "staff_id", "start_time", "end_time", "created_at").
		From(tableName).
		Where(where).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	blocks := make([]*domain.StaffAvailabilityBlock, 0)
	for rows.Next() {
		var block domain.StaffAvailabilityBlock
		if err := rows.Scan(&block.ID, &block.StaffID, &block.StartTime, &block.EndTime, &block.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %s - scan block: %w", ErrScanRow, op, err)
		}
		blocks = append(blocks, &block)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return blocks, nil
}
