package gateway

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"artisan-quotes/internal/pkg/config"
	"artisan-quotes/internal/pkg/errs"
	"artisan-quotes/internal/usecase/commands"

	"github.com/streadway/amqp"
)

var errPublisherClosed = errs.New("notification publisher is closed")

// AMQPPublisher emits quote events to a topic exchange. Events are
// best-effort; callers log and continue on failure.
type AMQPPublisher struct {
	exchange string

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	closed  bool
}

func NewAMQPPublisher(cfg config.NotifyConfig) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, errs.Wrap(err, "failed to connect to message broker")
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errs.Wrap(err, "failed to open broker channel")
	}

	err = channel.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // type
		true,         // durable
		false,        // auto-delete
		false,        // internal
		false,        // no-wait
		nil,          // args
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, errs.Wrap(err, "failed to declare exchange")
	}

	return &AMQPPublisher{
		exchange: cfg.Exchange,
		conn:     conn,
		channel:  channel,
	}, nil
}

func (p *AMQPPublisher) Publish(_ context.Context, event commands.QuoteEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errs.Wrap(err, "failed to encode quote event")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return errPublisherClosed
	}

	err = p.channel.Publish(
		p.exchange,
		event.Type, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			MessageId:    event.QuoteID.String(),
			Timestamp:    event.OccurredAt,
		},
	)
	if err != nil {
		return errs.Wrap(err, "failed to publish quote event")
	}
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}

// NoopPublisher stands in when no broker is configured. Events are dropped
// after a debug log line.
type NoopPublisher struct{}

func (NoopPublisher) Publish(_ context.Context, event commands.QuoteEvent) error {
	slog.Debug("notification dropped, no broker configured", "type", event.Type, "quote_id", event.QuoteID)
	return nil
}

// NewPublisher picks the AMQP implementation when a broker URL is set.
func NewPublisher(cfg config.NotifyConfig) (commands.NotificationPublisher, func(), error) {
	if cfg.URL == "" {
		return NoopPublisher{}, func() {}, nil
	}
	pub, err := NewAMQPPublisher(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if cerr := pub.Close(); cerr != nil {
			slog.Warn("failed to close notification publisher", "error", cerr.Error())
		}
	}
	return pub, cleanup, nil
}
