package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type SourceChunk struct {
	Id         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EntryId    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ChunkIndex int             `gorm:"default:0"` // 0-based index for ordering within the entry
	Text       string          `gorm:"type:text"`
	Embedding  pgvector.Vector `gorm:"type:vector(768)"` // text-embedding-004 / nomic-embed-text dimension
	Position   int64           `gorm:"type:bigserial;uniqueIndex;<-:false"`
	CreatedAt  time.Time       `gorm:"autoCreateTime"`
}

func (SourceChunk) TableName() string {
	return "source_chunks"
}
