package entity

import (
	"time"

	"github.com/google/uuid"
)

// RagNamespace is the isolation boundary of the retrieval index.
// One namespace per (owner, article); the name is derived deterministically
// as "<ownerId>:<articleId>".
type RagNamespace struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
}
