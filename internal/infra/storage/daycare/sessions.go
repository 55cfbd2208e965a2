package daycare

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-PetCareService/internal/domain"
	"github.com/m04kA/SMC-PetCareService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PetCareService/pkg/pgerrors"
	"github.com/m04kA/SMC-PetCareService/pkg/psqlbuilder"
)

const (
	sessionsTable = "daycare_sessions"

	constraintSessionDate = "daycare_sessions_date_key"
)

var sessionColumns = []string{
	"id",
	"date",
	"total_capacity",
	"current_bookings",
	"price",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий дневного пребывания: смены, бронирования и комнаты
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория дневного пребывания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateSession создает смену
func (r *Repository) CreateSession(ctx context.Context, session *domain.DaycareSession) (*domain.DaycareSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(sessionsTable).
		Columns("date", "total_capacity", "current_bookings", "price", "status").
		Values(session.Date, session.TotalCapacity, session.CurrentBookings, session.Price, session.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateSession - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&session.ID, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		if pgerrors.IsUniqueViolation(err, constraintSessionDate) {
			return nil, ErrSessionDateTaken
		}
		return nil, fmt.Errorf("%w: CreateSession - execute insert: %w", ErrExecQuery, err)
	}

	return session, nil
}

// GetSession получает смену по ID
// В транзакции строка блокируется (FOR UPDATE): все изменения счетчика смены сериализуются на ней
func (r *Repository) GetSession(ctx context.Context, id uuid.UUID) (*domain.DaycareSession, error) {
	selectBuilder := psqlbuilder.Select(sessionColumns...).
		From(sessionsTable).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	return r.getSession(ctx, "GetSession", selectBuilder)
}

// GetSessionByDate получает смену на дату
func (r *Repository) GetSessionByDate(ctx context.Context, date time.Time) (*domain.DaycareSession, error) {
	selectBuilder := psqlbuilder.Select(sessionColumns...).
		From(sessionsTable).
		Where(squirrel.Eq{"date": date.Format(domain.DateFormat)})

	return r.getSession(ctx, "GetSessionByDate", selectBuilder)
}

func (r *Repository) getSession(ctx context.Context, op string, selectBuilder squirrel.SelectBuilder) (*domain.DaycareSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	session, err := scanSession(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan session: %w", ErrScanRow, op, err)
	}

	return session, nil
}

// ListSessions получает смены по дате
// onlyBookable оставляет смены, которые не закрыты и не заполнены
func (r *Repository) ListSessions(ctx context.Context, onlyBookable bool) ([]*domain.DaycareSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(sessionColumns...).
		From(sessionsTable).
		OrderBy("date ASC")

	if onlyBookable {
		selectBuilder = selectBuilder.
			Where(squirrel.NotEq{"status": domain.SessionClosed}).
			Where("current_bookings < total_capacity")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListSessions - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListSessions - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	sessions := make([]*domain.DaycareSession, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListSessions - scan session: %w", ErrScanRow, err)
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListSessions - rows error: %w", ErrScanRow, err)
	}

	return sessions, nil
}

// UpdateSession сохраняет дату, вместимость, цену и статус смены
// Счетчик current_bookings этим методом не изменяется
func (r *Repository) UpdateSession(ctx context.Context, session *domain.DaycareSession) (*domain.DaycareSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(sessionsTable).
		Set("date", session.Date).
		Set("total_capacity", session.TotalCapacity).
		Set("price", session.Price).
		Set("status", session.Status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": session.ID}).
		Suffix("RETURNING current_bookings, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpdateSession - build update query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&session.CurrentBookings, &session.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		if pgerrors.IsUniqueViolation(err, constraintSessionDate) {
			return nil, ErrSessionDateTaken
		}
		if pgerrors.IsCheckViolation(err, "") {
			return nil, ErrCapacityExceeded
		}
		return nil, fmt.Errorf("%w: UpdateSession - execute update: %w", ErrExecQuery, err)
	}

	return session, nil
}

// AdjustCurrentBookings атомарно изменяет счетчик смены на delta и пересчитывает статус:
// FULL при достижении вместимости, AVAILABLE ниже нее, CLOSED не меняется.
// Если счетчик вышел бы за границы [0, total_capacity], возвращает ErrCapacityExceeded.
func (r *Repository) AdjustCurrentBookings(ctx context.Context, id uuid.UUID, delta int) (*domain.DaycareSession, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(sessionsTable).
		Set("current_bookings", squirrel.Expr("current_bookings + ?", delta)).
		Set("status", squirrel.Expr(
			"CASE WHEN status = ? THEN status WHEN current_bookings + ? >= total_capacity THEN ? ELSE ? END",
			domain.SessionClosed, delta, domain.SessionFull, domain.SessionAvailable,
		)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("current_bookings + ? BETWEEN 0 AND total_capacity", delta)).
		Suffix("RETURNING " + strings.Join(sessionColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AdjustCurrentBookings - build update query: %w", ErrBuildQuery, err)
	}

	session, err := scanSession(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		// Смена либо отсутствует, либо счетчик вышел бы за границы
		if _, getErr := r.GetSession(ctx, id); errors.Is(getErr, ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, ErrCapacityExceeded
	}
	if err != nil {
		return nil, fmt.Errorf("%w: AdjustCurrentBookings - execute update: %w", ErrExecQuery, err)
	}

	return session, nil
}

// DeleteSession удаляет смену
func (r *Repository) DeleteSession(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(sessionsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteSession - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteSession - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteSession - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*domain.DaycareSession, error) {
	var session domain.DaycareSession
	err := row.Scan(
		&session.ID,
		&session.Date,
		&session.TotalCapacity,
		&session.CurrentBookings,
		&session.Price,
		&session.Status,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &session, nil
}
