package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Consumer is satisfied by *amqp.Channel.
type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// Deliverer sends a dequeued notification, usually through SMTP.
type Deliverer interface {
	Notify(ctx context.Context, to, subject, body string) error
}

type Worker struct {
	Channel   Consumer
	Deliverer Deliverer
}

func NewWorker(ch Consumer, d Deliverer) *Worker {
	return &Worker{Channel: ch, Deliverer: d}
}

// Start consumes queueName until ctx is done or the delivery channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	log.Printf("[WORKER] consuming queue %q", queueName)

	for {
		select {
		case <-ctx.Done():
			log.Printf("[WORKER] stopping: %v", ctx.Err())
			return nil
		case d, ok := <-msgs:
			if !ok {
				log.Printf("[WORKER] delivery channel closed")
				return nil
			}
			w.handle(ctx, d)
		}
	}
}

// handle acks delivered messages and dead-letters the rest; there is no requeue.
func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	if err := w.process(ctx, d.Body); err != nil {
		log.Printf("[WORKER] notification %s dropped: %v", d.MessageId, err)
		if nackErr := d.Nack(false, false); nackErr != nil {
			log.Printf("[WORKER] nack failed: %v", nackErr)
		}
		return
	}

	if err := d.Ack(false); err != nil {
		log.Printf("[WORKER] ack failed: %v", err)
	}
}

func (w *Worker) process(ctx context.Context, body []byte) error {
	var payload NotificationPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return fmt.Errorf("invalid payload: %w", err)
	}
	if payload.To == "" {
		return fmt.Errorf("notification %s has no recipient", payload.ID)
	}

	return w.Deliverer.Notify(ctx, payload.To, payload.Subject, payload.Body)
}
