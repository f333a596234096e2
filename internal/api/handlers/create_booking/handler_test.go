package create_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createBooking "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/timewindow"
)

type stubUseCase struct {
	got *createBooking.Request
	err error
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &createBooking.Response{
		ID:        uuid.New(),
		ClientID:  req.ClientID,
		ServiceID: req.ServiceID,
		StartTime: req.StartTime,
		EndTime:   req.StartTime.Add(time.Hour),
		Status:    domain.StatusPending,
	}, nil
}

func serve(t *testing.T, uc *stubUseCase, userID uuid.UUID, body string) *httptest.ResponseRecorder {
	t.Helper()
	zone := timewindow.NewZone(time.FixedZone("MSK", 3*3600))
	h := NewHandler(uc, zone, logger.NewNop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	req = req.WithContext(middleware.WithActor(req.Context(), domain.Actor{UserID: userID}))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &stubUseCase{}
	userID := uuid.New()
	serviceID := uuid.New()

	rec := serve(t, uc, userID, `{"serviceId":"`+serviceID.String()+`","bookingDate":"2030-03-15","startTime":"10:00"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.got)
	assert.Equal(t, userID, uc.got.ClientID)
	assert.Equal(t, serviceID, uc.got.ServiceID)
	assert.True(t, uc.got.StartTime.Equal(time.Date(2030, 3, 15, 7, 0, 0, 0, time.UTC)), "local time is converted with the service zone")
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{name: "conflict", err: createBooking.ErrSlotNotAvailable, status: http.StatusConflict},
		{name: "service not found", err: createBooking.ErrServiceNotFound, status: http.StatusNotFound},
		{name: "foreign car", err: createBooking.ErrCarNotOwned, status: http.StatusForbidden},
		{name: "outside hours", err: createBooking.ErrOutsideWorkingHours, status: http.StatusBadRequest},
		{name: "internal", err: createBooking.ErrInternal, status: http.StatusInternalServerError},
		{name: "bad time", body: `{"serviceId":"` + uuid.NewString() + `","bookingDate":"2030-03-15","startTime":"25:00"}`, status: http.StatusBadRequest},
		{name: "bad json", body: `{`, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := tt.body
			if body == "" {
				body = `{"serviceId":"` + uuid.NewString() + `","bookingDate":"2030-03-15","startTime":"10:00"}`
			}
			rec := serve(t, &stubUseCase{err: tt.err}, uuid.New(), body)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestHandle_Unauthorized(t *testing.T) {
	h := NewHandler(&stubUseCase{}, timewindow.NewZone(time.UTC), logger.NewNop())
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
