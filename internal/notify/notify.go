// Package notify broadcasts trip-change events so interested clients can
// refetch, standing in for the realtime subscription channel the hosted
// datastore used to provide. Publishing is fire-and-forget: a dead broker
// must never fail a write.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Channel is the redis pub/sub channel trip events are published on.
const Channel = "splitter:trips"

// Event describes one trip mutation.
type Event struct {
	TripID string `json:"tripId"`
	// Kind is "updated" or "deleted".
	Kind string `json:"kind"`
	At   int64  `json:"at"`
}

// Publisher emits trip-change events.
type Publisher interface {
	TripChanged(ctx context.Context, tripID, kind string)
}

// RedisPublisher publishes events to a redis channel.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher connects to the given redis address.
func NewRedisPublisher(addr string) *RedisPublisher {
	return &RedisPublisher{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// TripChanged publishes an event; failures are logged and swallowed.
func (p *RedisPublisher) TripChanged(ctx context.Context, tripID, kind string) {
	payload, err := json.Marshal(Event{TripID: tripID, Kind: kind, At: time.Now().Unix()})
	if err != nil {
		return
	}
	if err := p.client.Publish(ctx, Channel, payload).Err(); err != nil {
		slog.Warn("failed to publish trip event", "trip_id", tripID, "error", err)
	}
}

// Close releases the redis connection.
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

// NopPublisher drops all events. Used when no broker is configured.
type NopPublisher struct{}

// TripChanged does nothing.
func (NopPublisher) TripChanged(context.Context, string, string) {}
