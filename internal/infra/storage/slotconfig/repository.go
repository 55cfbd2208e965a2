package slotconfig

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

const tableName = "service_slot_config"

// Repository репозиторий для работы с конфигурацией шага слотов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации шага слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую конфигурацию
func (r *Repository) Create(ctx context.Context, config *domain.SlotConfig) (*domain.SlotConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("service_id", "step_minutes").
		Values(config.ServiceID, config.StepMinutes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&config.ID, &config.CreatedAt, &config.UpdatedAt)
	if err != nil {
		if pgerrors.IsUniqueViolation(err, "") {
			return nil, ErrConfigExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return config, nil
}

// GetByService получает конфигурацию конкретного уровня
// serviceID == nil - глобальная конфигурация
func (r *Repository) GetByService(ctx context.Context, serviceID *uuid.UUID) (*domain.SlotConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "service_id", "step_minutes", "created_at", "updated_at").
		From(tableName)

	// Фильтрация по service_id (NULL или конкретное значение)
	if serviceID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *serviceID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByService - build select query: %w", ErrBuildQuery, err)
	}

	var config domain.SlotConfig
	var configServiceID uuid.NullUUID

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&configServiceID,
		&config.StepMinutes,
		&config.CreatedAt,
		&config.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByService - scan config: %w", ErrScanRow, err)
	}

	if configServiceID.Valid {
		config.ServiceID = &configServiceID.UUID
	}

	return &config, nil
}

// GetWithHierarchy получает конфигурацию с учетом иерархии приоритетов
// Приоритет применения конфигурации:
// 1. Конфигурация конкретной услуги
// 2. Глобальная конфигурация
//
// Если конфигурация не найдена ни на одном уровне, возвращает ErrConfigNotFound
func (r *Repository) GetWithHierarchy(ctx context.Context, serviceID uuid.UUID) (*domain.SlotConfig, error) {
	// 1. Конфигурация услуги
	config, err := r.GetByService(ctx, &serviceID)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return nil, fmt.Errorf("%w: GetWithHierarchy - level 1 (service): %w", ErrExecQuery, err)
	}

	// 2. Глобальная конфигурация
	config, err = r.GetByService(ctx, nil)
	if err == nil {
		return config, nil
	}
	if !errors.Is(err, ErrConfigNotFound) {
		return nil, fmt.Errorf("%w: GetWithHierarchy - level 2 (global): %w", ErrExecQuery, err)
	}

	return nil, ErrConfigNotFound
}

// Update обновляет шаг слотов
func (r *Repository) Update(ctx context.Context, config *domain.SlotConfig) (*domain.SlotConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("step_minutes", config.StepMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": config.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&config.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return config, nil
}
