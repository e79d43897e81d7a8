// Package events publishes change notifications for products and contacts.
package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// Actions carried in Event.Type after the resource name.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Event describes a completed write to the entity store.
type Event struct {
	Type       string      `json:"type"`
	Resource   string      `json:"resource"`
	Key        string      `json:"key"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data,omitempty"`
}

// New builds an Event of type "<resource>.<action>".
func New(resource, action, key string, data interface{}) Event {
	return Event{
		Type:       resource + "." + action,
		Resource:   resource,
		Key:        key,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// Publisher delivers events to interested consumers.
type Publisher interface {
	Publish(event Event) error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(Event) error { return nil }

// Broker is the transport AMQPPublisher writes to; *rabbitmq.Client satisfies it.
type Broker interface {
	Publish(routingKey string, body []byte) error
}

// AMQPPublisher encodes events as JSON and routes them by Event.Type.
type AMQPPublisher struct {
	broker Broker
}

// NewAMQPPublisher creates an AMQPPublisher on top of broker.
func NewAMQPPublisher(broker Broker) *AMQPPublisher {
	return &AMQPPublisher{broker: broker}
}

// Publish implements Publisher.
func (p *AMQPPublisher) Publish(event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.Type, err)
	}
	if err := p.broker.Publish(event.Type, body); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}
	return nil
}
