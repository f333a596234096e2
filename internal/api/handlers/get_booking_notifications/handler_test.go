package get_booking_notifications

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
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
	"github.com/m04kA/SMC-AppointmentService/internal/testutil"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type stubBookings struct {
	owner uuid.UUID
}

func (s stubBookings) GetByID(_ context.Context, id uuid.UUID, actor domain.Actor) (*models.BookingResponse, error) {
	if actor.UserID != s.owner {
		return nil, bookings.ErrAccessDenied
	}
	return &models.BookingResponse{ID: id}, nil
}

func TestHandle(t *testing.T) {
	store := testutil.NewNotificationLog()
	bookingID := uuid.New()
	owner := uuid.New()

	require.NoError(t, store.Create(context.Background(), &domain.Notification{BookingID: bookingID, Event: domain.EventCreate, Title: "Новая запись"}))
	require.NoError(t, store.Create(context.Background(), &domain.Notification{BookingID: uuid.New(), Event: domain.EventCreate}))
	sent := store.All()[0]
	require.NoError(t, store.MarkSent(context.Background(), sent.ID, time.Now()))

	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/bookings/{bookingId}/notifications", NewHandler(stubBookings{owner: owner}, store, logger.NewNop()).Handle)

	do := func(userID uuid.UUID) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/bookings/"+bookingID.String()+"/notifications", nil)
		req.Header.Set(middleware.HeaderUserID, userID.String())
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusForbidden, do(uuid.New()).Code)

	rec := do(owner)
	require.Equal(t, http.StatusOK, rec.Code)

	var body []NotificationResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, "create", body[0].Event)
	assert.Equal(t, "sent", body[0].Status)
	assert.NotNil(t, body[0].SentAt)
}
