// internal/pkg/realtime/hub.go
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Event change types
const (
	EventInsert = "INSERT"
	EventUpdate = "UPDATE"
	EventDelete = "DELETE"
)

// Event notifies subscribers that rows of a table changed for a user.
// It carries no row data; clients are expected to re-fetch.
type Event struct {
	Table  string    `json:"table"`
	Type   string    `json:"type"`
	UserID uint      `json:"user_id"`
	At     time.Time `json:"at"`
}

// Hub fans table-change events out to per-user subscribers through Redis
// Pub/Sub, so every API instance sees changes made on any other instance.
type Hub struct {
	client *redis.Client
	logger *logrus.Logger
}

// NewHub creates a realtime hub backed by Redis Pub/Sub
func NewHub(client *redis.Client, logger *logrus.Logger) *Hub {
	return &Hub{
		client: client,
		logger: logger,
	}
}

// Publish broadcasts a change event. Failures are logged, not returned;
// realtime delivery is advisory and must never fail the write that caused it.
func (h *Hub) Publish(ctx context.Context, table, eventType string, userID uint) {
	event := Event{
		Table:  table,
		Type:   eventType,
		UserID: userID,
		At:     time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.WithError(err).Error("Failed to marshal realtime event")
		return
	}

	if err := h.client.Publish(ctx, channelFor(table, userID), payload).Err(); err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"table":   table,
			"user_id": userID,
		}).Error("Failed to publish realtime event")
	}
}

// Subscription is a live stream of change events for one table and user
type Subscription struct {
	pubsub *redis.PubSub
	events chan Event
}

// Subscribe opens a stream of change events for a table scoped to one user.
// The caller must Close the subscription when done.
func (h *Hub) Subscribe(ctx context.Context, table string, userID uint) *Subscription {
	pubsub := h.client.Subscribe(ctx, channelFor(table, userID))

	sub := &Subscription{
		pubsub: pubsub,
		events: make(chan Event, 16),
	}

	go func() {
		defer close(sub.events)
		for msg := range pubsub.Channel() {
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				h.logger.WithError(err).Warn("Dropping malformed realtime event")
				continue
			}
			select {
			case sub.events <- event:
			default:
				// Slow consumer; dropping is fine, clients re-fetch on the next event
			}
		}
	}()

	return sub
}

// Events returns the channel the subscription delivers on. It is closed
// when the subscription is closed.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Close tears down the underlying Redis subscription
func (s *Subscription) Close() error {
	return s.pubsub.Close()
}

func channelFor(table string, userID uint) string {
	return fmt.Sprintf("realtime:%s:%d", table, userID)
}
