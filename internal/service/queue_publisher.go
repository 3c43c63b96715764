// Package service holds startup work that sits between the store and the
// outside world: seeding and the broker publisher it reports to.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/iliyamo/birds-api/internal/queue"
)

// EventPublisher announces seed events.  Implementations must not panic;
// failures come back as errors the caller may ignore.
type EventPublisher interface {
	PublishBirdsSeeded(ctx context.Context, ev q.BirdsSeededEvent) error
}

// AMQPPublisher dials the broker per publish; seed events happen at most
// once per process start, so no connection is kept open.
type AMQPPublisher struct {
	URL string
}

func NewAMQPPublisher(url string) *AMQPPublisher {
	return &AMQPPublisher{URL: url}
}

// PublishBirdsSeeded sends ev as a persistent JSON message on the
// birds.seeded queue through the default exchange.
func (p *AMQPPublisher) PublishBirdsSeeded(ctx context.Context, ev q.BirdsSeededEvent) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		return fmt.Errorf("rabbitmq: dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq: channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		q.BirdsSeededQueue, // name
		true,               // durable
		false,              // autoDelete
		false,              // exclusive
		false,              // noWait
		nil,                // args
	); err != nil {
		return fmt.Errorf("rabbitmq: queue declare: %w", err)
	}

	pub, err := seededPublishing(ev)
	if err != nil {
		return err
	}
	if err := ch.PublishWithContext(ctx,
		"",                 // default exchange
		q.BirdsSeededQueue, // routing key = queue name
		false,              // mandatory
		false,              // immediate
		pub,
	); err != nil {
		return fmt.Errorf("rabbitmq: publish: %w", err)
	}
	return nil
}

func seededPublishing(ev q.BirdsSeededEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("rabbitmq: marshal event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}, nil
}
