package service

import (
    "context"
    "encoding/json"
    "time"

    amqp "github.com/rabbitmq/amqp091-go"

    q "github.com/iliyamo/banquet-booking/internal/queue"
)

// Publisher delivers domain events after a write has committed.
type Publisher interface {
    Publish(ctx context.Context, ev q.Event) error
}

// AMQPPublisher publishes to the durable events queue on RabbitMQ.  Each
// publish opens its own connection, so a broker outage never leaves shared
// state behind.
type AMQPPublisher struct {
    URL         string
    DialTimeout time.Duration
}

// Publish sends ev as a persistent JSON message.
func (p AMQPPublisher) Publish(ctx context.Context, ev q.Event) error {
    timeout := p.DialTimeout
    if timeout <= 0 {
        timeout = 2 * time.Second
    }
    conn, err := amqp.DialConfig(p.URL, amqp.Config{Dial: amqp.DefaultDial(timeout)})
    if err != nil {
        return err
    }
    defer func() { _ = conn.Close() }()

    ch, err := conn.Channel()
    if err != nil {
        return err
    }
    defer func() { _ = ch.Close() }()

    // Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
    if _, err := ch.QueueDeclare(q.QueueName, true, false, false, false, nil); err != nil {
        return err
    }

    body, err := json.Marshal(ev)
    if err != nil {
        return err
    }

    return ch.PublishWithContext(ctx,
        "",          // default exchange
        q.QueueName, // routing key = queue name
        false,       // mandatory
        false,       // immediate
        amqp.Publishing{
            ContentType:  "application/json",
            DeliveryMode: amqp.Persistent,
            MessageId:    ev.ID,
            Type:         ev.Type,
            Timestamp:    time.Now().UTC(),
            Body:         body,
        })
}

// NopPublisher drops every event.  Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, q.Event) error { return nil }
