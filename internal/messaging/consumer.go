package messaging

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// InterfaceNotifier fans an update message out to the subscribers of one
// interface. Implemented by the websocket connection manager.
type InterfaceNotifier interface {
	NotifyInterface(interfaceID uuid.UUID, message []byte) int
}

// Consumer reads interface update events from RabbitMQ and forwards them to
// connected displays.
type Consumer struct {
	conn        *amqp.Connection
	notifier    InterfaceNotifier
	queueName   string
	stopChannel chan struct{}
}

// NewConsumer creates a new RabbitMQ consumer.
func NewConsumer(conn *amqp.Connection, notifier InterfaceNotifier, queueName string) (*Consumer, error) {
	return &Consumer{
		conn:        conn,
		notifier:    notifier,
		queueName:   queueName,
		stopChannel: make(chan struct{}),
	}, nil
}

// StartConsuming listens on the update queue. Blocking, run in a goroutine.
func (c *Consumer) StartConsuming() error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}
	defer ch.Close()

	// Redeclared with the same parameters as the publisher so start order
	// does not matter.
	q, err := ch.QueueDeclare(
		c.queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue '%s': %w", c.queueName, err)
	}

	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := ch.Consume(
		q.Name,
		"showcase-server-consumer", // consumer tag
		false,                      // auto-ack
		false,                      // exclusive
		false,                      // no-local
		false,                      // no-wait
		nil,                        // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	log.Printf("Consumer started, waiting for updates on queue '%s'", q.Name)

	for {
		select {
		case d, ok := <-msgs:
			if !ok {
				log.Println("RabbitMQ message channel closed")
				return nil
			}

			var payload InterfaceUpdatePayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("Failed to unmarshal update payload (DeliveryTag: %d): %v", d.DeliveryTag, err)
				_ = d.Nack(false, false) // malformed, do not requeue
				continue
			}

			delivered := c.notifier.NotifyInterface(payload.InterfaceID, d.Body)
			log.Printf("Update %s for interface %s delivered to %d client(s)",
				payload.UpdateType, payload.InterfaceID, delivered)
			_ = d.Ack(false)

		case <-c.stopChannel:
			log.Println("Consumer stop requested")
			return nil
		}
	}
}

// Stop signals the consuming loop to exit.
func (c *Consumer) Stop() {
	close(c.stopChannel)
}
