package mapper

import (
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"

	"articlegen-be/internal/entity"
	"articlegen-be/internal/model"
)

type SourceEntryMapper struct{}

func NewSourceEntryMapper() *SourceEntryMapper {
	return &SourceEntryMapper{}
}

func (m *SourceEntryMapper) ToEntity(e *model.SourceEntry) *entity.SourceEntry {
	if e == nil {
		return nil
	}
	return &entity.SourceEntry{
		Id:          e.Id,
		NamespaceId: e.NamespaceId,
		Key:         e.Key,
		Title:       e.Title,
		ContentHash: e.ContentHash,
		Status:      e.Status,
		Kind:        e.Kind,
		Metadata:    e.Metadata.Data(),
		Position:    e.Position,
		CreatedAt:   e.CreatedAt,
	}
}

func (m *SourceEntryMapper) ToModel(e *entity.SourceEntry) *model.SourceEntry {
	if e == nil {
		return nil
	}
	return &model.SourceEntry{
		Id:          e.Id,
		NamespaceId: e.NamespaceId,
		Key:         e.Key,
		Title:       e.Title,
		ContentHash: e.ContentHash,
		Status:      e.Status,
		Kind:        e.Kind,
		Metadata:    datatypes.NewJSONType(e.Metadata),
		Position:    e.Position,
		CreatedAt:   e.CreatedAt,
	}
}

func (m *SourceEntryMapper) ToEntities(models []*model.SourceEntry) []*entity.SourceEntry {
	entities := make([]*entity.SourceEntry, len(models))
	for i, e := range models {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

type SourceChunkMapper struct{}

func NewSourceChunkMapper() *SourceChunkMapper {
	return &SourceChunkMapper{}
}

func (m *SourceChunkMapper) ToEntity(e *model.SourceChunk) *entity.SourceChunk {
	if e == nil {
		return nil
	}
	return &entity.SourceChunk{
		Id:         e.Id,
		EntryId:    e.EntryId,
		ChunkIndex: e.ChunkIndex,
		Text:       e.Text,
		Embedding:  e.Embedding.Slice(),
		Position:   e.Position,
		CreatedAt:  e.CreatedAt,
	}
}

func (m *SourceChunkMapper) ToModel(e *entity.SourceChunk) *model.SourceChunk {
	if e == nil {
		return nil
	}
	return &model.SourceChunk{
		Id:         e.Id,
		EntryId:    e.EntryId,
		ChunkIndex: e.ChunkIndex,
		Text:       e.Text,
		Embedding:  pgvector.NewVector(e.Embedding),
		Position:   e.Position,
		CreatedAt:  e.CreatedAt,
	}
}

func (m *SourceChunkMapper) ToModels(chunks []*entity.SourceChunk) []*model.SourceChunk {
	models := make([]*model.SourceChunk, len(chunks))
	for i, e := range chunks {
		models[i] = m.ToModel(e)
	}
	return models
}
