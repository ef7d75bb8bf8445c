package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "ARTICLE_COMPLETED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

const (
	TypeSourceIngested   = "SOURCE_INGESTED"
	TypeArticleCompleted = "ARTICLE_COMPLETED"
	TypeUserRegistered   = "USER_REGISTERED"
)

// BaseEvent is the default Event implementation.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewSourceIngested records a source entry reaching the index.
func NewSourceIngested(userId, articleId, entryId uuid.UUID, title string) BaseEvent {
	return BaseEvent{
		Type: TypeSourceIngested,
		Data: map[string]interface{}{
			"user_id":    userId,
			"article_id": articleId,
			"entry_id":   entryId,
			"title":      title,
		},
		OccurredAt: time.Now(),
	}
}

// NewArticleCompleted records a finished article draft.
func NewArticleCompleted(userId, articleId uuid.UUID, title string) BaseEvent {
	return BaseEvent{
		Type: TypeArticleCompleted,
		Data: map[string]interface{}{
			"user_id":    userId,
			"article_id": articleId,
			"title":      title,
		},
		OccurredAt: time.Now(),
	}
}
