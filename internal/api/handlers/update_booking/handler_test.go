package update_booking

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings"
	"github.com/m04kA/SMC-AppointmentService/internal/service/bookings/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/timewindow"
)

type stubService struct {
	patch domain.BookingPatch
	err   error
}

func (s *stubService) Update(_ context.Context, id uuid.UUID, _ domain.Actor, patch domain.BookingPatch) (*models.BookingResponse, error) {
	s.patch = patch
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingResponse{ID: id}, nil
}

func serve(t *testing.T, svc *stubService, body string) *httptest.ResponseRecorder {
	t.Helper()
	zone := timewindow.NewZone(time.FixedZone("MSK", 3*3600))
	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/bookings/{bookingId}", NewHandler(svc, zone, logger.NewNop()).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/bookings/"+uuid.NewString(), strings.NewReader(body))
	req.Header.Set(middleware.HeaderUserID, uuid.NewString())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandle_Reschedule(t *testing.T) {
	svc := &stubService{}

	rec := serve(t, svc, `{"bookingDate":"2030-03-15","startTime":"10:00"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.patch.StartTime)
	assert.True(t, svc.patch.StartTime.Equal(time.Date(2030, 3, 15, 7, 0, 0, 0, time.UTC)))
}

func TestHandle_Errors(t *testing.T) {
	const reschedule = `{"bookingDate":"2030-03-15","startTime":"10:00"}`

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "inside minimum notice", err: fmt.Errorf("%w: must book at least 240 minutes in advance", bookings.ErrTooLateToBook), status: http.StatusBadRequest},
		{name: "beyond advance limit", err: fmt.Errorf("%w: can only book 2 days in advance", bookings.ErrDateTooFarInFuture), status: http.StatusBadRequest},
		{name: "provider missing in catalog", err: bookings.ErrProviderNotFound, status: http.StatusNotFound},
		{name: "service missing in catalog", err: bookings.ErrServiceNotFound, status: http.StatusNotFound},
		{name: "slot taken", err: bookings.ErrSlotNotAvailable, status: http.StatusConflict},
		{name: "finished booking", err: bookings.ErrNotEditable, status: http.StatusConflict},
		{name: "internal", err: bookings.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &stubService{err: tt.err}, reschedule)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
