package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"articlegen-be/internal/entity"
)

type SourceEntry struct {
	Id          uuid.UUID                                  `gorm:"type:uuid;primaryKey"`
	NamespaceId uuid.UUID                                  `gorm:"type:uuid;not null;index;uniqueIndex:idx_namespace_content_hash"`
	Key         string                                     `gorm:"not null"`
	Title       string                                     `gorm:"not null"`
	ContentHash string                                     `gorm:"not null;uniqueIndex:idx_namespace_content_hash"`
	Status      string                                     `gorm:"not null;default:pending"`
	Kind        string                                     `gorm:"not null"`
	Metadata    datatypes.JSONType[entity.SourceMetadata]  `gorm:"type:jsonb"`
	Position    int64                                      `gorm:"type:bigserial;uniqueIndex;<-:false"`
	CreatedAt   time.Time
}

func (SourceEntry) TableName() string {
	return "source_entries"
}
