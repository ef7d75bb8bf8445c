package entity

import (
	"time"

	"github.com/google/uuid"
)

// GenerationThread is persistent conversational state for one owner.
// Turns are append-only; later invocations referencing the thread id
// resume with the full history.
type GenerationThread struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt time.Time
}

type ThreadMessage struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ThreadId  uuid.UUID `gorm:"type:uuid;index"`
	Role      string
	Content   string
	ToolName  string // set on tool-result turns
	Position  int64  `gorm:"type:bigserial;uniqueIndex;<-:false"`
	CreatedAt time.Time
}
