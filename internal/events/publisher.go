package events

import (
	"context"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"spendwise/internal/logger"
)

// Publisher is the interface the service layer depends on. Implementations
// must be safe to call from request handlers; publish failures are the
// implementation's problem to report and must never fail the request.
type Publisher interface {
	PublishExpenseEvent(ctx context.Context, event *ExpenseEvent)
	Close() error
}

// AMQPPublisher publishes events to a durable RabbitMQ queue bound to a
// direct exchange.
type AMQPPublisher struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
}

// NewAMQPPublisher dials RabbitMQ and declares the exchange, queue, and
// binding.
func NewAMQPPublisher(url, exchangeName, queueName string) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p := &AMQPPublisher{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
	}

	if err := p.setup(); err != nil {
		p.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return p, nil
}

func (p *AMQPPublisher) setup() error {
	err := p.channel.ExchangeDeclare(
		p.exchangeName, // name
		"direct",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = p.channel.QueueDeclare(
		p.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	err = p.channel.QueueBind(
		p.queueName,    // queue name
		p.queueName,    // routing key (same as queue name for direct exchange)
		p.exchangeName, // exchange
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

// PublishExpenseEvent publishes one event. Failures are logged and
// swallowed; the expense write already committed and must not be rolled
// back over a broker hiccup.
func (p *AMQPPublisher) PublishExpenseEvent(ctx context.Context, event *ExpenseEvent) {
	body, err := event.ToJSON()
	if err != nil {
		logger.Get().Errorw("failed to marshal expense event", "error", err, "type", event.Type)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchangeName, // exchange
		p.queueName,    // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		logger.Get().Errorw("failed to publish expense event",
			"error", err,
			"type", event.Type,
			"expense_id", event.ExpenseID,
		)
		return
	}

	logger.Get().Debugw("published expense event",
		"type", event.Type,
		"expense_id", event.ExpenseID,
		"exchange", p.exchangeName,
		"queue", p.queueName,
	)
}

// Close releases the channel and connection.
func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NoopPublisher discards events. Used when no broker is configured and in
// tests.
type NoopPublisher struct{}

// PublishExpenseEvent does nothing.
func (NoopPublisher) PublishExpenseEvent(ctx context.Context, event *ExpenseEvent) {}

// Close does nothing.
func (NoopPublisher) Close() error { return nil }
