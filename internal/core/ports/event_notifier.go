package ports

import (
	"context"
	"time"

	"checkcore/internal/core/domain/model/kernel"
)

type EventType string

const (
	EventKdsUpdate   EventType = "kds_update"
	EventCheckUpdate EventType = "check_update"
)

// Event is a change notification for kitchen displays and terminals.
// Subscribers that miss events re-fetch state; nothing is replayed.
type Event struct {
	Type       EventType
	Channel    string
	CheckID    kernel.UUID
	Action     string
	OccurredAt time.Time
}

// RvcChannel names the channel all terminals and displays of a revenue center listen on.
func RvcChannel(rvcID kernel.UUID) string {
	return "rvc:" + rvcID.String()
}

// EventNotifier publishes at most once, without acknowledgement.
type EventNotifier interface {
	Publish(ctx context.Context, event Event) error
}
