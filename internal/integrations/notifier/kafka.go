package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrEncode возвращается, если уведомление не удалось сериализовать
	ErrEncode = errors.New("notifier: failed to encode message")

	// ErrPublish возвращается, если брокер не принял сообщение
	ErrPublish = errors.New("notifier: failed to publish message")
)

// messageWriter часть *kafka.Writer, которую использует нотификатор
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// payload тело сообщения в топике уведомлений
type payload struct {
	NotificationID string            `json:"notificationId"`
	BookingID      string            `json:"bookingId"`
	RecipientID    string            `json:"recipientId"`
	RecipientRole  string            `json:"recipientRole"`
	Event          string            `json:"event"`
	Title          string            `json:"title"`
	Body           string            `json:"body"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	CreatedAt      time.Time         `json:"createdAt"`
}

// KafkaNotifier публикует уведомления в Kafka, доставкой занимается notification-service
type KafkaNotifier struct {
	writer messageWriter
}

// NewKafkaNotifier создает продюсера для топика уведомлений
// Ключ сообщения - получатель, поэтому уведомления одного получателя идут в одну партицию
func NewKafkaNotifier(brokers []string, topic string, writeTimeout time.Duration) *KafkaNotifier {
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			WriteTimeout: writeTimeout,
			// одна попытка на уведомление, повторов нет
			MaxAttempts: 1,
		},
	}
}

// Send публикует одно уведомление
func (n *KafkaNotifier) Send(ctx context.Context, msg domain.Notification) error {
	value, err := json.Marshal(payload{
		NotificationID: msg.ID.String(),
		BookingID:      msg.BookingID.String(),
		RecipientID:    msg.RecipientID.String(),
		RecipientRole:  string(msg.RecipientRole),
		Event:          string(msg.Event),
		Title:          msg.Title,
		Body:           msg.Body,
		Metadata:       msg.Metadata,
		CreatedAt:      msg.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	err = n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.RecipientID.String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(msg.ID.String())},
			{Key: "event_type", Value: []byte("booking." + string(msg.Event))},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}
	return nil
}

// Close закрывает продюсера, дожидаясь отправки буфера
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
