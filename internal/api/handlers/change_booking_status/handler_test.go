package change_booking_status

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type stubService struct {
	err    error
	reason *string
}

func (s *stubService) respond(id uuid.UUID, status domain.BookingStatus) (*models.BookingResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingResponse{ID: id, Status: string(status)}, nil
}

func (s *stubService) Confirm(_ context.Context, id uuid.UUID, _ domain.Actor) (*models.BookingResponse, error) {
	return s.respond(id, domain.StatusConfirmed)
}

func (s *stubService) Reject(_ context.Context, id uuid.UUID, _ domain.Actor, reason *string) (*models.BookingResponse, error) {
	s.reason = reason
	return s.respond(id, domain.StatusRejected)
}

func (s *stubService) Complete(_ context.Context, id uuid.UUID, _ domain.Actor) (*models.BookingResponse, error) {
	return s.respond(id, domain.StatusCompleted)
}

func serve(t *testing.T, svc *stubService, action Action, body string) *httptest.ResponseRecorder {
	t.Helper()
	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/bookings/{bookingId}/"+string(action), NewHandler(svc, action, logger.NewNop()).Handle)

	req := httptest.NewRequest(http.MethodPatch, "/bookings/"+uuid.NewString()+"/"+string(action), strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, uuid.NewString())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_RejectWithReason(t *testing.T) {
	svc := &stubService{}

	rec := serve(t, svc, ActionReject, `{"reason":"нет мастеров"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.reason)
	assert.Equal(t, "нет мастеров", *svc.reason)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "booking not found", err: bookings.ErrBookingNotFound, status: http.StatusNotFound},
		{name: "provider missing in catalog", err: bookings.ErrProviderNotFound, status: http.StatusNotFound},
		{name: "access denied", err: bookings.ErrAccessDenied, status: http.StatusForbidden},
		{name: "terminal status", err: fmt.Errorf("%w: status is cancelled", bookings.ErrInvalidTransition), status: http.StatusConflict},
		{name: "internal", err: fmt.Errorf("%w: db down", bookings.ErrInternal), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &stubService{err: tt.err}, ActionConfirm, "")
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
