package walklimit

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
	"github.com/m04kA/SMC-WalkBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WalkBookingService/pkg/psqlbuilder"
)

// Repository репозиторий переопределений дневного лимита прогулок
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDate возвращает переопределение на дату или ErrOverrideNotFound
func (r *Repository) GetByDate(ctx context.Context, date time.Time) (*domain.WalkLimitOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"date": date.Format(domain.DateFormat)})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	var result []overrideRow
	if err := sqlx.StructScan(rows, &result); err != nil {
		return nil, fmt.Errorf("%w: GetByDate - scan override: %w", ErrScanRow, err)
	}

	if len(result) == 0 {
		return nil, ErrOverrideNotFound
	}

	return result[0].toDomain(), nil
}

// ListRange возвращает переопределения в диапазоне дат [from, to]
func (r *Repository) ListRange(ctx context.Context, from, to time.Time) ([]*domain.WalkLimitOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.GtOrEq{"date": from.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"date": to.Format(domain.DateFormat)}).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	var result []overrideRow
	if err := sqlx.StructScan(rows, &result); err != nil {
		return nil, fmt.Errorf("%w: ListRange - scan overrides: %w", ErrScanRow, err)
	}

	overrides := make([]*domain.WalkLimitOverride, 0, len(result))
	for _, row := range result {
		overrides = append(overrides, row.toDomain())
	}

	return overrides, nil
}

// Upsert создает или заменяет переопределение на дату. MaxWalks == nil снимает лимит
func (r *Repository) Upsert(ctx context.Context, override *domain.WalkLimitOverride) (*domain.WalkLimitOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var maxWalks interface{}
	if override.MaxWalks != nil {
		maxWalks = *override.MaxWalks
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("date", "max_walks").
		Values(override.Date.Format(domain.DateFormat), maxWalks).
		Suffix("ON CONFLICT (date) DO UPDATE SET max_walks = EXCLUDED.max_walks, updated_at = NOW() " +
			"RETURNING date, max_walks, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	var result []overrideRow
	if err := sqlx.StructScan(rows, &result); err != nil {
		return nil, fmt.Errorf("%w: Upsert - scan override: %w", ErrScanRow, err)
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("%w: Upsert - no row returned", ErrExecQuery)
	}

	return result[0].toDomain(), nil
}

// Delete удаляет переопределение, дата возвращается к лимиту по умолчанию
func (r *Repository) Delete(ctx context.Context, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"date": date.Format(domain.DateFormat)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
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
		return ErrOverrideNotFound
	}

	return nil
}
