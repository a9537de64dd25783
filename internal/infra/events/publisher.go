// Package events publishes booking lifecycle events to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"facility-booking/internal/pkg/clock"
	"facility-booking/internal/pkg/config"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
)

type amqpChannel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type amqpConn interface {
	channel() (amqpChannel, error)
	Close() error
}

type dialFunc func(url string) (amqpConn, error)

type realConn struct {
	*amqp.Connection
}

func (c realConn) channel() (amqpChannel, error) {
	return c.Connection.Channel()
}

func dialAMQP(url string) (amqpConn, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	return realConn{conn}, nil
}

// Publisher opens a connection per event. Booking confirmations are rare
// enough that holding a channel open is not worth the reconnect handling.
type Publisher struct {
	url   string
	queue string
	clock clock.Clock
	dial  dialFunc
}

func NewPublisher(cfg config.AMQPConfig, clk clock.Clock) *Publisher {
	return &Publisher{url: cfg.URL, queue: cfg.Queue, clock: clk, dial: dialAMQP}
}

var _ shared.EventPublisher = (*Publisher)(nil)

// PublishBookingConfirmed logs and returns any failure. Callers decide
// whether it matters.
func (p *Publisher) PublishBookingConfirmed(ctx context.Context, event shared.BookingConfirmed) error {
	body, err := json.Marshal(event)
	if err != nil {
		return p.fail("marshal event", err, event)
	}

	conn, err := p.dial(p.url)
	if err != nil {
		return p.fail("dial", err, event)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.channel()
	if err != nil {
		return p.fail("open channel", err, event)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return p.fail("declare queue", err, event)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.RecordID.String(),
		Timestamp:    p.clock.Now().UTC(),
		Type:         "booking.confirmed",
		Body:         body,
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := ch.PublishWithContext(pubCtx, "", p.queue, false, false, msg); err != nil {
		return p.fail("publish", err, event)
	}

	slog.Info("booking event published",
		slog.String("queue", p.queue),
		slog.String("record_id", event.RecordID.String()),
		slog.Int64("external_id", event.ExternalID))
	return nil
}

func (p *Publisher) fail(step string, err error, event shared.BookingConfirmed) error {
	slog.Error("rabbitmq: "+step+" failed",
		slog.String("queue", p.queue),
		slog.String("record_id", event.RecordID.String()),
		slog.String("error", err.Error()))
	return errs.Wrap(err, "rabbitmq "+step)
}
