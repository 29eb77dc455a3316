package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"showcase-server/internal/models"
)

// InterfaceUpdatePayload is the event body published when an interface or its
// configuration document changes. Consumers, including the in-process
// websocket hub, use it to refresh connected displays.
type InterfaceUpdatePayload struct {
	InterfaceID uuid.UUID            `json:"interface_id"`
	WorkspaceID uuid.UUID            `json:"workspace_id"`
	Kind        models.InterfaceKind `json:"kind"`
	UpdateType  string               `json:"update_type"` // created | header_saved | item_upserted | item_deleted | renamed | deleted
	OccurredAt  time.Time            `json:"occurred_at"`
}

// Update type values carried in InterfaceUpdatePayload.UpdateType.
const (
	UpdateTypeCreated     = "created"
	UpdateTypeHeaderSaved = "header_saved"
	UpdateTypeItemUpsert  = "item_upserted"
	UpdateTypeItemDeleted = "item_deleted"
	UpdateTypeRenamed     = "renamed"
	UpdateTypeDeleted     = "deleted"
)

// InterfaceEventPublisher defines the interface for publishing interface
// update events.
type InterfaceEventPublisher interface {
	PublishInterfaceUpdate(ctx context.Context, payload InterfaceUpdatePayload) error
}

// rabbitMQPublisher implements InterfaceEventPublisher for RabbitMQ.
type rabbitMQPublisher struct {
	channel   *amqp.Channel
	queueName string
}

// NewRabbitMQInterfaceEventPublisher opens a channel on the connection and
// declares the durable update queue. The publisher declares the queue itself
// so the service does not depend on consumer start order.
func NewRabbitMQInterfaceEventPublisher(conn *amqp.Connection, queueName string) (InterfaceEventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("interface event publisher: failed to open channel: %w", err)
	}
	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Printf("InterfaceEventPublisher ERROR: failed to declare queue '%s': %v", queueName, err)
		ch.Close()
		return nil, fmt.Errorf("interface event publisher: failed to declare queue '%s': %w", queueName, err)
	}
	log.Printf("InterfaceEventPublisher: queue '%s' declared", queueName)
	return &rabbitMQPublisher{channel: ch, queueName: queueName}, nil
}

// PublishInterfaceUpdate publishes an interface update event.
func (p *rabbitMQPublisher) PublishInterfaceUpdate(ctx context.Context, payload InterfaceUpdatePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[InterfaceID: %s] Failed to marshal InterfaceUpdatePayload: %v", payload.InterfaceID, err)
		return fmt.Errorf("failed to marshal interface update for %s: %w", payload.InterfaceID, err)
	}

	if err := p.publishMessage(ctx, body); err != nil {
		log.Printf("[InterfaceID: %s] Failed to publish InterfaceUpdate: %v", payload.InterfaceID, err)
		return fmt.Errorf("failed to publish interface update for %s: %w", payload.InterfaceID, err)
	}
	return nil
}

func (p *rabbitMQPublisher) publishMessage(ctx context.Context, body []byte) error {
	if p.channel == nil {
		log.Println("Publish error: RabbitMQ channel is not initialized (nil)")
		return errors.New("rabbitmq channel is not initialized")
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var err error
	// Up to 3 attempts with linear backoff.
	for attempt := 1; attempt <= 3; attempt++ {
		err = p.channel.PublishWithContext(ctx,
			"",          // exchange (default)
			p.queueName, // routing key (queue name)
			false,       // mandatory
			false,       // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Body:         body,
				Timestamp:    time.Now(),
				AppId:        "showcase-server",
			},
		)
		if err == nil {
			break
		}
		log.Printf("Publish error (attempt %d) to queue '%s': %v", attempt, p.queueName, err)
		time.Sleep(time.Duration(attempt) * 100 * time.Millisecond)
	}
	if err != nil {
		return fmt.Errorf("failed to publish to queue %s after retries: %w", p.queueName, err)
	}
	return nil
}
