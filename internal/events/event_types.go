package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventBookCreated    EventType = "book_created"
	EventBookUpdated    EventType = "book_updated"
	EventBookDeleted    EventType = "book_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Username string `json:"username"`
}

// BookChangedPayload payload shared by book lifecycle events.
type BookChangedPayload struct {
	BookID string `json:"book_id"`
	Title  string `json:"title,omitempty"`
}
