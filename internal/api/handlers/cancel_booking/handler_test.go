package cancel_booking

import (
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
	"github.com/m04kA/SMC-AppointmentService/internal/service/conflictguard"
	"github.com/m04kA/SMC-AppointmentService/internal/service/notify"
	settingsService "github.com/m04kA/SMC-AppointmentService/internal/service/settings"
	"github.com/m04kA/SMC-AppointmentService/internal/testutil"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/timewindow"
)

func TestCancelThroughRouter(t *testing.T) {
	log := logger.NewNop()
	zone := timewindow.NewZone(time.UTC)
	store := testutil.NewBookingStore()
	catalog := testutil.NewCatalog()
	notifier := &testutil.RecordingNotifier{}
	trigger := notify.NewTrigger(notifier, testutil.FixedClock{T: time.Now()}, zone, log)

	owner := uuid.New()
	provider := catalog.AddProvider(&domain.Provider{Name: "Сервис", OwnerIDs: []uuid.UUID{owner}})
	service := catalog.AddService(&domain.Service{ProviderID: provider.ID, Name: "Мойка", DurationMinutes: 30})
	resolver := settingsService.NewService(testutil.NewSettingsStore(), catalog, domain.DefaultSchedulingDefaults(), log)
	svc := bookings.NewService(store, conflictguard.New(store), catalog, resolver, store, trigger, nil, zone, log)

	clientID := uuid.New()
	start := time.Now().Add(48 * time.Hour).Truncate(time.Hour)
	b := store.Put(&domain.Booking{
		ClientID:   clientID,
		ProviderID: provider.ID,
		ServiceID:  service.ID,
		StartTime:  start,
		EndTime:    start.Add(30 * time.Minute),
		Status:     domain.StatusConfirmed,
	})

	router := mux.NewRouter()
	router.Use(middleware.Auth)
	router.HandleFunc("/api/v1/bookings/{bookingId}/cancel", NewHandler(svc, log).Handle).Methods(http.MethodPatch)

	do := func(userID uuid.UUID, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+b.ID.String()+"/cancel", strings.NewReader(body))
		req.Header.Set(middleware.HeaderUserID, userID.String())
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusForbidden, do(uuid.New(), "").Code)

	rec := do(clientID, `{"cancellationReason":"не успеваю"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"cancelled"`)

	assert.Equal(t, http.StatusConflict, do(clientID, "").Code, "second cancel is an invalid transition")

	// провайдер записи пропал из каталога
	orphan := store.Put(&domain.Booking{
		ClientID:   clientID,
		ProviderID: uuid.New(),
		ServiceID:  service.ID,
		StartTime:  start,
		EndTime:    start.Add(30 * time.Minute),
		Status:     domain.StatusPending,
	})
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/"+orphan.ID.String()+"/cancel", nil)
	req.Header.Set(middleware.HeaderUserID, uuid.NewString())
	orphanRec := httptest.NewRecorder()
	router.ServeHTTP(orphanRec, req)
	assert.Equal(t, http.StatusNotFound, orphanRec.Code)

	trigger.Wait()
	sent := notifier.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, provider.ID, sent[0].RecipientID)
}
