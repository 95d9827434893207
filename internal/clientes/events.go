package clientes

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultEventsChannel is the Redis channel used when none is configured.
const DefaultEventsChannel = "clientes.events"

// EventType names a committed mutation.
type EventType string

const (
	EventCreated EventType = "cliente.created"
	EventUpdated EventType = "cliente.updated"
	EventDeleted EventType = "cliente.deleted"
)

// Event is published after a mutation has been committed to the repository.
type Event struct {
	ID         uuid.UUID `json:"id"`
	Type       EventType `json:"type"`
	ClienteID  int64     `json:"cliente_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Cliente    *Cliente  `json:"cliente,omitempty"`
}

func newEvent(typ EventType, id int64, c *Cliente, at time.Time) Event {
	return Event{
		ID:         uuid.New(),
		Type:       typ,
		ClienteID:  id,
		OccurredAt: at.UTC(),
		Cliente:    c,
	}
}

// Publisher delivers change events to interested parties.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// RedisPublisher publishes events as JSON on a Redis pub/sub channel.
type RedisPublisher struct {
	client  redis.Cmdable
	channel string
}

// NewRedisPublisher wraps a Redis client. An empty channel uses DefaultEventsChannel.
func NewRedisPublisher(client redis.Cmdable, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultEventsChannel
	}
	return &RedisPublisher{client: client, channel: channel}
}

// Channel returns the channel events are published on.
func (p *RedisPublisher) Channel() string {
	return p.channel
}

func (p *RedisPublisher) Publish(ctx context.Context, evt Event) error {
	if p == nil || p.client == nil {
		return nil
	}
	raw, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.channel, raw).Err()
}
