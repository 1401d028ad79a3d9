package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// SensorConsumer receives pushed sensor readings from a durable AMQP queue
type SensorConsumer struct {
	url   string
	queue string
	apply func(observations map[string]int)
}

const maxBackoff = 30 * time.Second

func NewSensorConsumer(url, queue string, apply func(observations map[string]int)) *SensorConsumer {
	return &SensorConsumer{url: url, queue: queue, apply: apply}
}

// Run keeps consuming until ctx is cancelled, reconnecting with backoff
// when the broker goes away
func (c *SensorConsumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			log.Printf("sensor-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff = min(backoff*2, maxBackoff)
			continue
		}
		backoff = time.Second

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("sensor-consumer: consume loop ended: %v; reconnecting", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}
}

func (c *SensorConsumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.handle(d.Body); err != nil {
				log.Printf("sensor-consumer: handle message failed: %v", err)
				_ = d.Nack(false, false) // malformed payloads are not requeued
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *SensorConsumer) handle(body []byte) error {
	observations, err := DecodeObservations(body)
	if err != nil {
		return err
	}
	c.apply(observations)
	return nil
}
