// file: internals/features/attendance/events/clock_publisher.go
package events

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"worknest_backend/internals/features/attendance/model"

	"github.com/bytedance/sonic"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ClockExchange      = "attendance_topic"
	clockRoutingPrefix = "attendance.clock."
)

// Publisher sends clock events to whoever listens for them.
type Publisher interface {
	PublishClock(ctx context.Context, ev model.ClockEvent) error
	Close() error
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishClock(context.Context, model.ClockEvent) error { return nil }
func (NoopPublisher) Close() error                                          { return nil }

func RoutingKey(action string) string { return clockRoutingPrefix + action }

// EncodeClockEvent is the message body consumers receive.
func EncodeClockEvent(ev model.ClockEvent) ([]byte, error) {
	return sonic.Marshal(ev)
}

/* ====================== RABBITMQ ====================== */

type RabbitPublisher struct {
	Conn    *amqp.Connection
	Channel *amqp.Channel

	mu sync.Mutex
}

// ConnectRabbitPublisher dials the broker and declares the topic exchange.
func ConnectRabbitPublisher(url string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		ClockExchange, // name
		"topic",       // type
		true,          // durable
		false,         // auto-deleted
		false,         // internal
		false,         // no-wait
		nil,           // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	log.Printf("[INFO] RabbitMQ connected, exchange %s ready", ClockExchange)
	return &RabbitPublisher{Conn: conn, Channel: channel}, nil
}

func (p *RabbitPublisher) PublishClock(ctx context.Context, ev model.ClockEvent) error {
	body, err := EncodeClockEvent(ev)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Channel.PublishWithContext(ctx,
		ClockExchange,                   // exchange
		RoutingKey(ev.ClockEventAction), // routing key
		false,                           // mandatory
		false,                           // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		})
}

func (p *RabbitPublisher) Close() error {
	if p.Channel != nil {
		p.Channel.Close()
	}
	if p.Conn != nil {
		return p.Conn.Close()
	}
	return nil
}
