package events

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"time"

	"github.com/draftea/offer-system/shared/models"
)

var (
	ErrInvalidTopic    = errors.New("invalid topic")
	ErrInvalidReceiver = errors.New("receiver should be a pointer")
)

// Event represents a domain event
type Event struct {
	ID            models.ID   `json:"id"`
	AggregateID   models.ID   `json:"aggregate_id"`
	Topic         Topic       `json:"topic"`
	EventType     string      `json:"event_type"`
	Version       string      `json:"version"`
	Data          interface{} `json:"data"`
	Metadata      Metadata    `json:"metadata"`
	Timestamp     time.Time   `json:"timestamp"`
	CorrelationID models.ID   `json:"correlation_id"`
}

// Publisher publishes events
type Publisher interface {
	Publish(ctx context.Context, events ...*Event) error
}

// Subscriber subscribes to events
type Subscriber interface {
	Subscribe(ctx context.Context, eventType string, handler EventHandler) error
}

// EventHandler handles domain events
type EventHandler interface {
	Handle(ctx context.Context, event *Event) error
}

// NewEvent creates a new domain event
func NewEvent(aggregateID models.ID, eventType string, data interface{}) *Event {
	topic, _ := NewTopic(eventType)
	return &Event{
		ID:          models.GenerateUUID(),
		AggregateID: aggregateID,
		Topic:       topic,
		EventType:   eventType,
		Version:     "1.0",
		Data:        data,
		Metadata:    make(Metadata),
		Timestamp:   time.Now().UTC(),
	}
}

// WithCorrelationID sets correlation ID
func (e *Event) WithCorrelationID(correlationID models.ID) *Event {
	e.CorrelationID = correlationID
	return e
}

// WithMetadata adds metadata
func (e *Event) WithMetadata(key string, value string) *Event {
	if e.Metadata == nil {
		e.Metadata = make(Metadata)
	}
	e.Metadata.Set(key, value)
	return e
}

// MarshalPayload marshals the event payload
func (e *Event) MarshalPayload() (json.RawMessage, error) {
	if b, ok := e.Data.([]byte); ok {
		return b, nil
	}

	if b, ok := e.Data.(json.RawMessage); ok {
		return b, nil
	}

	return json.Marshal(e.Data)
}

// UnmarshalPayload unmarshals the event payload into the given pointer
func (e *Event) UnmarshalPayload(v interface{}) error {
	vValue := reflect.ValueOf(v)
	if vValue.Kind() != reflect.Ptr || vValue.IsNil() {
		return ErrInvalidReceiver
	}

	vValue = vValue.Elem()
	if e.Data != nil {
		payloadValue := reflect.ValueOf(e.Data)
		if vValue.Type() == payloadValue.Type() {
			vValue.Set(payloadValue)
			return nil
		}
	}

	raw, err := e.MarshalPayload()
	if err != nil {
		return err
	}

	return json.Unmarshal(raw, v)
}

// Matches checks if the event matches the given topic pattern and metadata
func (e *Event) Matches(topicPattern Topic, metadata Metadata) bool {
	return e.Topic.Matches(topicPattern) && e.Metadata.Matches(metadata)
}

// Clone creates a copy of the event
func (e *Event) Clone() *Event {
	return &Event{
		ID:            e.ID,
		AggregateID:   e.AggregateID,
		Topic:         e.Topic,
		EventType:     e.EventType,
		Version:       e.Version,
		Data:          e.Data,
		Metadata:      e.Metadata.Clone(),
		Timestamp:     e.Timestamp,
		CorrelationID: e.CorrelationID,
	}
}

// Envelope is the wire format carried in SNS messages and read back from SQS
type Envelope struct {
	ID            string          `json:"id"`
	AggregateID   string          `json:"aggregate_id,omitempty"`
	Metadata      Metadata        `json:"metadata"`
	Topic         string          `json:"topic"`
	Payload       json.RawMessage `json:"payload"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id,omitempty"`
}

// ToEnvelope converts the event into its wire format
func (e *Event) ToEnvelope() (*Envelope, error) {
	payload, err := e.MarshalPayload()
	if err != nil {
		return nil, err
	}

	return &Envelope{
		ID:            e.ID.String(),
		AggregateID:   e.AggregateID.String(),
		Metadata:      e.Metadata,
		Topic:         e.Topic.String(),
		Payload:       payload,
		Timestamp:     e.Timestamp,
		CorrelationID: e.CorrelationID.String(),
	}, nil
}

// FromEnvelope rebuilds an event from its wire format. Data holds the raw payload.
func FromEnvelope(env *Envelope) (*Event, error) {
	topic, err := NewTopic(env.Topic)
	if err != nil {
		return nil, err
	}

	metadata := env.Metadata
	if metadata == nil {
		metadata = make(Metadata)
	}

	return &Event{
		ID:            models.ID(env.ID),
		AggregateID:   models.ID(env.AggregateID),
		Topic:         topic,
		EventType:     topic.String(),
		Version:       "1.0",
		Data:          env.Payload,
		Metadata:      metadata,
		Timestamp:     env.Timestamp,
		CorrelationID: models.ID(env.CorrelationID),
	}, nil
}

// Event Types Constants
const (
	// Offer lifecycle events
	OfferCreatedEvent  = "offer.created"
	OfferAssignedEvent = "offer.assigned"
	OfferUpdatedEvent  = "offer.updated"
	OfferCanceledEvent = "offer.canceled"

	// Assignment saga events
	OfferAssignmentOrphanedEvent = "offer.assignment.orphaned"

	// Inbound commands
	OfferAssignmentRequestedEvent   = "offer.assignment.requested"
	OfferCancellationRequestedEvent = "offer.cancellation.requested"
)
