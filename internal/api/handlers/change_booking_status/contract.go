package change_booking_status

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
)

type BookingService interface {
	Confirm(ctx context.Context, id uuid.UUID, actor domain.Actor) (*models.BookingResponse, error)
	Reject(ctx context.Context, id uuid.UUID, actor domain.Actor, reason *string) (*models.BookingResponse, error)
	Complete(ctx context.Context, id uuid.UUID, actor domain.Actor) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
