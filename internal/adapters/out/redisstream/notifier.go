// Package redisstream publishes check and KDS change events to Redis Streams,
// one stream per channel. Displays and terminals read the stream of their
// revenue center; a reader that falls behind re-fetches state instead of
// replaying.
package redisstream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"checkcore/internal/core/ports"

	"github.com/go-redis/redis/v8"
)

// DefaultMaxLen caps each stream so idle channels do not grow without bound.
const DefaultMaxLen = 1000

// eventPayload is the JSON body stored under the "data" field of a stream entry.
type eventPayload struct {
	Type       string    `json:"type"`
	Channel    string    `json:"channel"`
	CheckID    string    `json:"checkId"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurredAt"`
}

type Notifier struct {
	client *redis.Client
	prefix string
	maxLen int64
}

// NewNotifier publishes to streams named prefix + channel. maxLen <= 0 uses DefaultMaxLen.
func NewNotifier(client *redis.Client, prefix string, maxLen int64) *Notifier {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	return &Notifier{client: client, prefix: prefix, maxLen: maxLen}
}

// StreamName returns the stream an event on channel is written to.
func (n *Notifier) StreamName(channel string) string {
	return n.prefix + channel
}

// Publish appends the event with XADD. Nothing waits for a consumer.
func (n *Notifier) Publish(ctx context.Context, event ports.Event) error {
	if event.Channel == "" {
		return fmt.Errorf("publish %s: channel is empty", event.Type)
	}

	data, err := json.Marshal(eventPayload{
		Type:       string(event.Type),
		Channel:    event.Channel,
		CheckID:    event.CheckID.String(),
		Action:     event.Action,
		OccurredAt: event.OccurredAt.UTC(),
	})
	if err != nil {
		return err
	}

	err = n.client.XAdd(ctx, &redis.XAddArgs{
		Stream: n.StreamName(event.Channel),
		MaxLen: n.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"type": string(event.Type),
			"data": string(data),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("publish %s to %s: %w", event.Type, event.Channel, err)
	}
	return nil
}

var _ ports.EventNotifier = (*Notifier)(nil)
