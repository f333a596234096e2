package notify

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	fakes "github.com/m04kA/SMC-AppointmentService/internal/testutil"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/timewindow"
)

func newBooking() *domain.Booking {
	return &domain.Booking{
		ID:          uuid.New(),
		ClientID:    uuid.New(),
		ProviderID:  uuid.New(),
		ServiceID:   uuid.New(),
		StartTime:   time.Date(2030, 3, 15, 7, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2030, 3, 15, 8, 0, 0, 0, time.UTC),
		Status:      domain.StatusPending,
		ServiceName: "Мойка",
	}
}

func newTrigger(t *testing.T, n Notifier, opts ...Option) *Trigger {
	t.Helper()
	zone := timewindow.NewZone(time.FixedZone("MSK", 3*60*60))
	clock := fakes.FixedClock{T: time.Date(2030, 3, 1, 0, 0, 0, 0, time.UTC)}
	return NewTrigger(n, clock, zone, logger.NewNop(), opts...)
}

func TestTrigger_RecipientPolicy(t *testing.T) {
	b := newBooking()

	tests := []struct {
		name     string
		event    domain.BookingEvent
		by       domain.ActorRole
		wantID   uuid.UUID
		wantRole domain.RecipientRole
		wantNone bool
	}{
		{name: "create goes to provider", event: domain.EventCreate, by: domain.RoleClient, wantID: b.ProviderID, wantRole: domain.RecipientProvider},
		{name: "confirm goes to client", event: domain.EventConfirm, by: domain.RoleProvider, wantID: b.ClientID, wantRole: domain.RecipientClient},
		{name: "reject goes to client", event: domain.EventReject, by: domain.RoleProvider, wantID: b.ClientID, wantRole: domain.RecipientClient},
		{name: "client cancel goes to provider", event: domain.EventCancel, by: domain.RoleClient, wantID: b.ProviderID, wantRole: domain.RecipientProvider},
		{name: "provider cancel goes to client", event: domain.EventCancel, by: domain.RoleProvider, wantID: b.ClientID, wantRole: domain.RecipientClient},
		{name: "admin cancel goes to client", event: domain.EventCancel, by: domain.RoleAdmin, wantID: b.ClientID, wantRole: domain.RecipientClient},
		{name: "remove goes to client", event: domain.EventRemove, by: domain.RoleProvider, wantID: b.ClientID, wantRole: domain.RecipientClient},
		{name: "complete is silent", event: domain.EventComplete, by: domain.RoleProvider, wantNone: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := &fakes.RecordingNotifier{}
			tr := newTrigger(t, n)

			tr.Notify(b, tt.event, tt.by)
			tr.Wait()

			sent := n.Sent()
			if tt.wantNone {
				assert.Empty(t, sent)
				return
			}
			require.Len(t, sent, 1)
			assert.Equal(t, tt.wantID, sent[0].RecipientID)
			assert.Equal(t, tt.wantRole, sent[0].RecipientRole)
			assert.Equal(t, tt.event, sent[0].Event)
			assert.Equal(t, b.ID.String(), sent[0].Metadata["bookingId"])
			assert.NotEqual(t, uuid.Nil, sent[0].ID)
		})
	}
}

func TestTrigger_RenderUsesZone(t *testing.T) {
	b := newBooking()
	b.Status = domain.StatusRejected
	b.RejectionReason = ptr.Ptr("нет мастера")
	tr := newTrigger(t, &fakes.RecordingNotifier{})

	msg, ok := tr.Build(b, domain.EventReject, domain.RoleProvider)
	require.True(t, ok)
	assert.Equal(t, "Запись отклонена", msg.Title)
	assert.Contains(t, msg.Body, "15.03.2030 10:00")
	assert.Contains(t, msg.Body, "Причина: нет мастера")
}

func TestTrigger_CreateRequiresAction(t *testing.T) {
	tr := newTrigger(t, &fakes.RecordingNotifier{})

	msg, ok := tr.Build(newBooking(), domain.EventCreate, domain.RoleClient)
	require.True(t, ok)
	assert.Equal(t, "Новая запись", msg.Title)
	assert.Equal(t, "true", msg.Metadata["requiresAction"])
}

func TestTrigger_FailureIsRecorded(t *testing.T) {
	n := &fakes.RecordingNotifier{Err: errors.New("broker down")}
	store := fakes.NewNotificationLog()
	m := metrics.NewWithRegisterer(prometheus.NewRegistry(), "test")
	tr := newTrigger(t, n, WithStore(store), WithRecorder(m))

	tr.Notify(newBooking(), domain.EventCreate, domain.RoleClient)
	tr.Wait()

	logged := store.All()
	require.Len(t, logged, 1)
	assert.Equal(t, domain.NotificationFailed, logged[0].Status)
	require.NotNil(t, logged[0].Error)
	assert.Equal(t, "broker down", *logged[0].Error)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Notifications.WithLabelValues("test", "create", "failed")))
}

func TestTrigger_SuccessIsRecorded(t *testing.T) {
	n := &fakes.RecordingNotifier{}
	store := fakes.NewNotificationLog()
	tr := newTrigger(t, n, WithStore(store))

	tr.Notify(newBooking(), domain.EventConfirm, domain.RoleProvider)
	tr.Wait()

	logged := store.All()
	require.Len(t, logged, 1)
	assert.Equal(t, domain.NotificationSent, logged[0].Status)
	assert.NotNil(t, logged[0].SentAt)
}
