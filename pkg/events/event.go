package events

import "time"

// Event is the envelope every message on the event bus satisfies.
type Event interface {
	// EventType returns the code for this event, e.g. "DOCUMENT_PROCESSED".
	EventType() string

	// Payload returns the event data as it will be published.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the plain implementation used for document lifecycle
// notifications.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

var _ Event = BaseEvent{}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
