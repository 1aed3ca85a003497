// Package pubsub provides a generic publish/subscribe event system.
// The roster store publishes change events through a broker; the UI
// update loop subscribes via the bubbletea adapter in tea.go.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	// ImportedEvent signals a wholesale roster replacement.
	ImportedEvent EventType = "imported"
	// UpdatedEvent signals a single-record or single-program mutation.
	UpdatedEvent EventType = "updated"
	// LogEvent carries a structured log line.
	LogEvent EventType = "log"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
