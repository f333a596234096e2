package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const table = "bookings"

var columns = []string{
	"id",
	"client_id",
	"provider_id",
	"service_id",
	"staff_id",
	"car_id",
	"start_time",
	"end_time",
	"status",
	"service_name",
	"service_price",
	"notes",
	"client_comment",
	"rejection_reason",
	"cancellation_reason",
	"confirmed_at",
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

// Create сохраняет новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Пересечение с живым бронированием того же ресурса отклоняется БД (ErrSlotNotAvailable)
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"client_id",
			"provider_id",
			"service_id",
			"staff_id",
			"car_id",
			"resource_key",
			"start_time",
			"end_time",
			"status",
			"service_name",
			"service_price",
			"notes",
			"client_comment",
		).
		Values(
			booking.ID,
			booking.ClientID,
			booking.ProviderID,
			booking.ServiceID,
			booking.StaffID,
			booking.CarID,
			booking.Resource().Key(),
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.ServiceName,
			booking.ServicePrice,
			booking.Notes,
			booking.ClientComment,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return nil, wrapExec("Create - execute insert", err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// LockResource берет advisory-блокировку ресурса до конца текущей транзакции
// Конкурентные писатели одного ресурса выстраиваются в очередь
func (r *Repository) LockResource(ctx context.Context, resourceKey string) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return fmt.Errorf("%w: LockResource - requires transaction", ErrExecQuery)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", resourceKey); err != nil {
		return wrapExec("LockResource - execute", err)
	}
	return nil
}

// ListLiveOverlapping возвращает живые (pending/confirmed) бронирования ресурса,
// пересекающиеся с [start, end). excludeID исключает бронирование из выборки.
// Внутри транзакции найденные строки блокируются (FOR UPDATE)
func (r *Repository) ListLiveOverlapping(
	ctx context.Context,
	resourceKey string,
	start, end time.Time,
	excludeID *uuid.UUID,
) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"resource_key": resourceKey}).
		Where(squirrel.Eq{"status": statusStrings(domain.LiveStatuses)}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		OrderBy("start_time ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListLiveOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapExec("ListLiveOverlapping - execute query", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListByClient получает историю бронирований клиента (сначала новые)
func (r *Repository) ListByClient(ctx context.Context, filter domain.ClientBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"client_id": filter.ClientID}).
		OrderBy("start_time DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	selectBuilder = paginate(selectBuilder, filter.Limit, filter.Offset)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClient - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapExec("ListByClient - execute query", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListByProvider получает бронирования провайдера с фильтрацией
// По умолчанию возвращаются только живые бронирования, по возрастанию времени начала
func (r *Repository) ListByProvider(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"provider_id": filter.ProviderID}).
		OrderBy("start_time ASC")

	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *filter.StaffID})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_time": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *filter.To})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(domain.LiveStatuses)})
	}
	selectBuilder = paginate(selectBuilder, filter.Limit, filter.Offset)

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByProvider - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapExec("ListByProvider - execute query", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Update сохраняет изменяемые поля бронирования
// resource_key не меняется: ресурс бронирования фиксируется при создании
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("start_time", booking.StartTime).
		Set("end_time", booking.EndTime).
		Set("status", booking.Status).
		Set("notes", booking.Notes).
		Set("client_comment", booking.ClientComment).
		Set("rejection_reason", booking.RejectionReason).
		Set("cancellation_reason", booking.CancellationReason).
		Set("confirmed_at", booking.ConfirmedAt).
		Set("cancelled_at", booking.CancelledAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBookingNotFound
	}
	if err != nil {
		return wrapExec("Update - execute update", err)
	}

	return nil
}

// Delete физически удаляет бронирование (административное удаление)
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapExec("Delete - execute delete", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID,
		&b.ClientID,
		&b.ProviderID,
		&b.ServiceID,
		&b.StaffID,
		&b.CarID,
		&b.StartTime,
		&b.EndTime,
		&b.Status,
		&b.ServiceName,
		&b.ServicePrice,
		&b.Notes,
		&b.ClientComment,
		&b.RejectionReason,
		&b.CancellationReason,
		&b.ConfirmedAt,
		&b.CancelledAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func paginate(b squirrel.SelectBuilder, limit, offset int) squirrel.SelectBuilder {
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	if offset > 0 {
		b = b.Offset(uint64(offset))
	}
	return b
}
