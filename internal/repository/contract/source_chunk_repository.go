package contract

import (
	"context"

	"github.com/google/uuid"

	"articlegen-be/internal/entity"
	"articlegen-be/internal/repository/specification"
)

// ScoredSourceChunk wraps a chunk with its similarity score
type ScoredSourceChunk struct {
	Chunk      *entity.SourceChunk
	EntryId    uuid.UUID
	EntryTitle string
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type SourceChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.SourceChunk) error
	DeleteByEntryId(ctx context.Context, entryId uuid.UUID) error
	DeleteByNamespaceId(ctx context.Context, namespaceId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SourceChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilar ranks ready chunks in one namespace by cosine similarity
	// to the query embedding. Ties are broken by chunk insertion order.
	SearchSimilar(ctx context.Context, namespaceId uuid.UUID, embedding []float32, limit int) ([]*ScoredSourceChunk, error)
}
