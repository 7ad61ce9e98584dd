package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// EventTypeStatusChanged тип события смены статуса записи
const EventTypeStatusChanged = "appointment.status_changed"

const (
	resultOK    = "ok"
	resultError = "error"
)

// StatusChanged событие смены статуса записи для внешнего сервиса уведомлений
type StatusChanged struct {
	AppointmentID int64                    `json:"appointmentId"`
	ShopID        int64                    `json:"shopId"`
	CustomerID    int64                    `json:"customerId"`
	StaffID       *int64                   `json:"staffId,omitempty"`
	Action        domain.Action            `json:"action"`
	From          domain.AppointmentStatus `json:"from"`
	To            domain.AppointmentStatus `json:"to"`
	OccurredAt    time.Time                `json:"occurredAt"`
}

// NewStatusChanged формирует событие по записи после перехода
func NewStatusChanged(a *domain.Appointment, action domain.Action, from domain.AppointmentStatus, now time.Time) StatusChanged {
	return StatusChanged{
		AppointmentID: a.ID,
		ShopID:        a.ShopID,
		CustomerID:    a.CustomerID,
		StaffID:       a.StaffID,
		Action:        action,
		From:          from,
		To:            a.Status,
		OccurredAt:    now,
	}
}

// MessageWriter подмножество *kafka.Writer
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Metrics счётчик публикаций
type Metrics interface {
	ObserveEvent(topic, result string)
}

// Publisher публикует события в Kafka
type Publisher struct {
	writer  MessageWriter
	topic   string
	metrics Metrics
}

// NewKafkaWriter создает writer с хешированием по ключу: события одной записи попадают в одну партицию
func NewKafkaWriter(brokers []string, writeTimeout time.Duration) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		WriteTimeout: writeTimeout,
		RequiredAcks: kafka.RequireOne,
	}
}

// NewPublisher создает publisher поверх writer
func NewPublisher(writer MessageWriter, topic string, metrics Metrics) *Publisher {
	return &Publisher{
		writer:  writer,
		topic:   topic,
		metrics: metrics,
	}
}

// PublishStatusChanged отправляет событие; ключ сообщения - ID записи
func (p *Publisher) PublishStatusChanged(ctx context.Context, event StatusChanged) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: marshal status changed: %w", err)
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(strconv.FormatInt(event.AppointmentID, 10)),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(uuid.NewString())},
			{Key: "event_type", Value: []byte(EventTypeStatusChanged)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.observe(resultError)
		return fmt.Errorf("events: write to %s: %w", p.topic, err)
	}

	p.observe(resultOK)
	return nil
}

// Close закрывает writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func (p *Publisher) observe(result string) {
	if p.metrics != nil {
		p.metrics.ObserveEvent(p.topic, result)
	}
}

// NoopPublisher используется, когда брокеры не настроены
type NoopPublisher struct{}

// PublishStatusChanged ничего не делает
func (NoopPublisher) PublishStatusChanged(context.Context, StatusChanged) error {
	return nil
}

// Close ничего не делает
func (NoopPublisher) Close() error {
	return nil
}

// SplitBrokers разбирает список брокеров через запятую
func SplitBrokers(raw string) []string {
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
