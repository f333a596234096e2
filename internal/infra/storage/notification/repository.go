package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

const table = "notifications"

// Repository журнал отправленных уведомлений
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория уведомлений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет уведомление в статусе queued
func (r *Repository) Create(ctx context.Context, n *domain.Notification) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.Status == "" {
		n.Status = domain.NotificationQueued
	}

	metadata, err := json.Marshal(n.Metadata)
	if err != nil {
		return fmt.Errorf("%w: Create - marshal metadata: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"booking_id",
			"recipient_id",
			"recipient_role",
			"event",
			"title",
			"body",
			"metadata",
			"status",
		).
		Values(
			n.ID,
			n.BookingID,
			n.RecipientID,
			n.RecipientRole,
			n.Event,
			n.Title,
			n.Body,
			string(metadata),
			n.Status,
		).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&n.CreatedAt); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// MarkSent отмечает уведомление доставленным
func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID, sentAt time.Time) error {
	return r.setStatus(ctx, "MarkSent", id, map[string]any{
		"status":  domain.NotificationSent,
		"sent_at": sentAt,
		"error":   nil,
	})
}

// MarkFailed отмечает неудачную попытку отправки
func (r *Repository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	return r.setStatus(ctx, "MarkFailed", id, map[string]any{
		"status": domain.NotificationFailed,
		"error":  reason,
	})
}

func (r *Repository) setStatus(ctx context.Context, op string, id uuid.UUID, values map[string]any) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		SetMap(values).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

// ListByBooking возвращает все уведомления по бронированию в порядке создания
func (r *Repository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"recipient_id",
		"recipient_role",
		"event",
		"title",
		"body",
		"metadata",
		"status",
		"error",
		"created_at",
		"sent_at",
	).
		From(table).
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Notification, 0)
	for rows.Next() {
		var n domain.Notification
		var metadata []byte
		if err := rows.Scan(
			&n.ID,
			&n.BookingID,
			&n.RecipientID,
			&n.RecipientRole,
			&n.Event,
			&n.Title,
			&n.Body,
			&metadata,
			&n.Status,
			&n.Error,
			&n.CreatedAt,
			&n.SentAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByBooking - scan row: %v", ErrScanRow, err)
		}
		if err := json.Unmarshal(metadata, &n.Metadata); err != nil {
			return nil, fmt.Errorf("%w: ListByBooking - unmarshal metadata: %v", ErrScanRow, err)
		}
		result = append(result, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - rows error: %v", ErrScanRow, err)
	}
	return result, nil
}
