package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-WalkBookingService/internal/domain"
	"github.com/m04kA/SMC-WalkBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-WalkBookingService/pkg/psqlbuilder"
)

const tableName = "bookings"

var selectColumns = []string{
	"id",
	"owner_id",
	"dog_name",
	"service_type",
	"booking_type",
	"status",
	"booking_date",
	"end_date",
	"start_at",
	"end_at",
	"series_id",
	"series_index",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	endDate := booking.EndDate
	if endDate.IsZero() {
		endDate = booking.Date
	}

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"owner_id",
			"dog_name",
			"service_type",
			"booking_type",
			"status",
			"booking_date",
			"end_date",
			"start_at",
			"end_at",
			"series_id",
			"series_index",
			"notes",
		).
		Values(
			booking.OwnerID,
			booking.DogName,
			booking.ServiceType,
			booking.BookingType,
			booking.Status,
			booking.Date.Format(domain.DateFormat),
			endDate.Format(domain.DateFormat),
			booking.Start,
			booking.End,
			booking.SeriesID,
			booking.SeriesIndex,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.EndDate = endDate
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID. Внутри транзакции строка блокируется
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(selectColumns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// ListConfirmedOnDate подтверждённые разовые бронирования на дату, по времени начала
func (r *Repository) ListConfirmedOnDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	builder := psqlbuilder.Select(selectColumns...).
		From(tableName).
		Where(squirrel.Eq{
			"booking_date": date.Format(domain.DateFormat),
			"booking_type": domain.BookingSingle,
			"status":       domain.StatusConfirmed,
		}).
		OrderBy("start_at ASC")

	return r.list(ctx, "ListConfirmedOnDate", builder)
}

// ListActiveSittings подтверждённые передержки, период которых содержит дату
func (r *Repository) ListActiveSittings(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	d := date.Format(domain.DateFormat)

	builder := psqlbuilder.Select(selectColumns...).
		From(tableName).
		Where(squirrel.Eq{
			"booking_type": domain.BookingMultiDay,
			"status":       domain.StatusConfirmed,
		}).
		Where(squirrel.LtOrEq{"booking_date": d}).
		Where(squirrel.GtOrEq{"end_date": d}).
		OrderBy("booking_date ASC")

	return r.list(ctx, "ListActiveSittings", builder)
}

// ListSittingsOverlapping подтверждённые передержки, пересекающие период [from, to]
func (r *Repository) ListSittingsOverlapping(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	builder := psqlbuilder.Select(selectColumns...).
		From(tableName).
		Where(squirrel.Eq{
			"booking_type": domain.BookingMultiDay,
			"status":       domain.StatusConfirmed,
		}).
		Where(squirrel.LtOrEq{"booking_date": to.Format(domain.DateFormat)}).
		Where(squirrel.GtOrEq{"end_date": from.Format(domain.DateFormat)}).
		OrderBy("booking_date ASC")

	return r.list(ctx, "ListSittingsOverlapping", builder)
}

// CountConfirmedWalks считает подтверждённые solo/quick прогулки на дату.
// Postgres не допускает FOR UPDATE вместе с COUNT, поэтому строки выбираются и считаются здесь
func (r *Repository) CountConfirmedWalks(ctx context.Context, date time.Time, excludeID *int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	walkTypes := make([]string, len(domain.WalkServiceTypes))
	for i, s := range domain.WalkServiceTypes {
		walkTypes[i] = string(s)
	}

	builder := psqlbuilder.Select("id").
		From(tableName).
		Where(squirrel.Eq{
			"booking_date": date.Format(domain.DateFormat),
			"booking_type": domain.BookingSingle,
			"status":       domain.StatusConfirmed,
			"service_type": walkTypes,
		})

	if excludeID != nil {
		builder = builder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountConfirmedWalks - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CountConfirmedWalks - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		count++
	}

	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("%w: CountConfirmedWalks - rows error: %w", ErrScanRow, err)
	}

	return count, nil
}

// ListByDate все бронирования, затрагивающие дату (включая передержки).
// Опционально фильтрует по статусу
func (r *Repository) ListByDate(ctx context.Context, date time.Time, status *domain.BookingStatus) ([]*domain.Booking, error) {
	d := date.Format(domain.DateFormat)

	builder := psqlbuilder.Select(selectColumns...).
		From(tableName).
		Where(squirrel.LtOrEq{"booking_date": d}).
		Where(squirrel.GtOrEq{"end_date": d}).
		OrderBy("start_at ASC")

	if status != nil {
		builder = builder.Where(squirrel.Eq{"status": *status})
	}

	return r.list(ctx, "ListByDate", builder)
}

// ListByOwner бронирования владельца, новые сверху. Опционально фильтрует по статусу
func (r *Repository) ListByOwner(ctx context.Context, ownerID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	builder := psqlbuilder.Select(selectColumns...).
		From(tableName).
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("start_at DESC")

	if status != nil {
		builder = builder.Where(squirrel.Eq{"status": *status})
	}

	return r.list(ctx, "ListByOwner", builder)
}

// ListBySeries все бронирования серии по порядку
func (r *Repository) ListBySeries(ctx context.Context, seriesID string) ([]*domain.Booking, error) {
	builder := psqlbuilder.Select(selectColumns...).
		From(tableName).
		Where(squirrel.Eq{"series_id": seriesID}).
		OrderBy("series_index ASC")

	return r.list(ctx, "ListBySeries", builder)
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	query, args, err := psqlbuilder.Update(tableName).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "UpdateStatus", query, args)
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, reason *string) error {
	query, args, err := psqlbuilder.Update(tableName).
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "Cancel", query, args)
}

// Reschedule переносит разовое бронирование на новую дату и время
func (r *Repository) Reschedule(ctx context.Context, id int64, date time.Time, start, end time.Time) error {
	d := date.Format(domain.DateFormat)

	query, args, err := psqlbuilder.Update(tableName).
		Set("booking_date", d).
		Set("end_date", d).
		Set("start_at", start).
		Set("end_at", end).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, "Reschedule", query, args)
}

func (r *Repository) list(ctx context.Context, op string, builder squirrel.SelectBuilder) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Внутри транзакции блокируем прочитанные строки до её завершения
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return bookings, nil
}

func (r *Repository) execAffectingOne(ctx context.Context, op string, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует строку в порядке selectColumns
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.OwnerID,
		&booking.DogName,
		&booking.ServiceType,
		&booking.BookingType,
		&booking.Status,
		&booking.Date,
		&booking.EndDate,
		&booking.Start,
		&booking.End,
		&booking.SeriesID,
		&booking.SeriesIndex,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Date = domain.DateOnly(booking.Date)
	booking.EndDate = domain.DateOnly(booking.EndDate)
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}
