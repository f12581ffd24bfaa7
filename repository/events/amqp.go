package eventsrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	ExchangeName = "library_activity"
	ExchangeType = "topic"
)

// SetupConn dials the broker and declares the activity exchange. Retries a
// few times to cover container startup ordering.
func SetupConn(url string) (*amqp.Connection, *amqp.Channel, error) {
	var conn *amqp.Connection
	var err error

	for i := 0; i < 5; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, nil, fmt.Errorf("could not open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		ExchangeName,
		ExchangeType,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("could not declare exchange: %w", err)
	}

	return conn, ch, nil
}

type publisher struct {
	ch *amqp.Channel
}

// NewAMQP wraps an open channel as a Publisher. The routing key is the event
// name, so consumers can bind "borrow.#" or a single event.
func NewAMQP(ch *amqp.Channel) Publisher { return &publisher{ch: ch} }

func (p *publisher) Publish(ctx context.Context, a Activity) error {
	body, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("could not marshal activity: %w", err)
	}

	return p.ch.PublishWithContext(ctx,
		ExchangeName,
		a.Event, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
