package entity

import (
	"time"

	"github.com/google/uuid"
)

// SourceChunk is the unit of retrieval: one segment of an entry's text with
// its own embedding. Owned exclusively by its entry and deleted with it.
type SourceChunk struct {
	Id         uuid.UUID
	EntryId    uuid.UUID
	ChunkIndex int
	Text       string
	Embedding  []float32
	Position   int64 // global insertion order, used to break similarity ties
	CreatedAt  time.Time
}
