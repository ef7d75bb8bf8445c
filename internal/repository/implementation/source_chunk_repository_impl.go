package implementation

import (
	"context"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"articlegen-be/internal/entity"
	"articlegen-be/internal/mapper"
	"articlegen-be/internal/model"
	"articlegen-be/internal/repository/contract"
	"articlegen-be/internal/repository/specification"
)

type SourceChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SourceChunkMapper
}

func NewSourceChunkRepository(db *gorm.DB) contract.SourceChunkRepository {
	return &SourceChunkRepositoryImpl{db: db, mapper: mapper.NewSourceChunkMapper()}
}

func (r *SourceChunkRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SourceChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.SourceChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := r.mapper.ToModels(chunks)
	return r.db.WithContext(ctx).CreateInBatches(models, 100).Error
}

func (r *SourceChunkRepositoryImpl) DeleteByEntryId(ctx context.Context, entryId uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.SourceChunk{}, "entry_id = ?", entryId).Error
}

func (r *SourceChunkRepositoryImpl) DeleteByNamespaceId(ctx context.Context, namespaceId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("entry_id IN (?)", r.db.Model(&model.SourceEntry{}).Select("id").Where("namespace_id = ?", namespaceId)).
		Delete(&model.SourceChunk{}).Error
}

func (r *SourceChunkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SourceChunk, error) {
	var chunks []*model.SourceChunk
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&chunks).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.SourceChunk, len(chunks))
	for i, c := range chunks {
		entities[i] = r.mapper.ToEntity(c)
	}
	return entities, nil
}

func (r *SourceChunkRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.SourceChunk{}).Count(&count).Error
	return count, err
}

type scoredChunkRow struct {
	model.SourceChunk
	EntryTitle string  `gorm:"column:entry_title"`
	Similarity float64 `gorm:"column:similarity"`
}

// similarityQuery ranks ready chunks in one namespace by the similarity
// alias computed in the select list. Ordering must go through the alias:
// gorm's Order only honors strings and order clauses, anything else is
// dropped and the query degrades to insertion order.
func (r *SourceChunkRepositoryImpl) similarityQuery(db *gorm.DB, namespaceId uuid.UUID, vec pgvector.Vector, limit int) *gorm.DB {
	return db.
		Table("source_chunks").
		Select("source_chunks.*, source_entries.title as entry_title, 1 - (source_chunks.embedding <=> ?) as similarity", vec).
		Joins("JOIN source_entries ON source_entries.id = source_chunks.entry_id").
		Where("source_entries.namespace_id = ?", namespaceId).
		Where("source_entries.status = ?", entity.SourceStatusReady).
		Order("similarity DESC").
		Order("source_chunks.position ASC").
		Limit(limit)
}

// SearchSimilar uses the pgvector cosine distance operator. Only chunks
// whose entry has finished indexing participate; entries still pending or
// failed are invisible to retrieval. Equal similarities are ordered by chunk
// insertion position so repeated queries return identical rankings.
func (r *SourceChunkRepositoryImpl) SearchSimilar(ctx context.Context, namespaceId uuid.UUID, embedding []float32, limit int) ([]*contract.ScoredSourceChunk, error) {
	vec := pgvector.NewVector(embedding)

	var rows []scoredChunkRow
	err := r.similarityQuery(r.db.WithContext(ctx), namespaceId, vec, limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]*contract.ScoredSourceChunk, len(rows))
	for i, row := range rows {
		results[i] = &contract.ScoredSourceChunk{
			Chunk:      r.mapper.ToEntity(&row.SourceChunk),
			EntryId:    row.EntryId,
			EntryTitle: row.EntryTitle,
			Similarity: row.Similarity,
		}
	}
	return results, nil
}
