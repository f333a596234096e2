package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func (w *recordingWriter) Close() error { return nil }

func TestKafkaNotifier_Send(t *testing.T) {
	w := &recordingWriter{}
	n := &KafkaNotifier{writer: w}

	msg := domain.Notification{
		ID:            uuid.New(),
		BookingID:     uuid.New(),
		RecipientID:   uuid.New(),
		RecipientRole: domain.RecipientProvider,
		Event:         domain.EventCreate,
		Title:         "Новая запись",
		Body:          "Клиент записался",
		Metadata:      map[string]string{"status": "pending"},
	}

	require.NoError(t, n.Send(context.Background(), msg))
	require.Len(t, w.msgs, 1)

	got := w.msgs[0]
	assert.Equal(t, msg.RecipientID.String(), string(got.Key))
	assert.Equal(t, msg.ID.String(), string(got.Headers[0].Value))
	assert.Equal(t, "booking.create", string(got.Headers[1].Value))

	var body payload
	require.NoError(t, json.Unmarshal(got.Value, &body))
	assert.Equal(t, "Новая запись", body.Title)
	assert.Equal(t, "provider", body.RecipientRole)
	assert.Equal(t, "pending", body.Metadata["status"])
}

func TestKafkaNotifier_SendError(t *testing.T) {
	n := &KafkaNotifier{writer: &recordingWriter{err: errors.New("broker down")}}

	err := n.Send(context.Background(), domain.Notification{ID: uuid.New()})
	assert.ErrorIs(t, err, ErrPublish)
}
