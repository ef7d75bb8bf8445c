package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"articlegen-be/internal/entity"
	"articlegen-be/internal/mapper"
	"articlegen-be/internal/model"
	"articlegen-be/internal/repository/contract"
	"articlegen-be/internal/repository/specification"
)

type SourceEntryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SourceEntryMapper
}

func NewSourceEntryRepository(db *gorm.DB) contract.SourceEntryRepository {
	return &SourceEntryRepositoryImpl{db: db, mapper: mapper.NewSourceEntryMapper()}
}

func (r *SourceEntryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Create inserts the entry and reads back the database-assigned position.
// A gorm.ErrDuplicatedKey return means another entry with the same content
// hash already exists in the namespace; the caller decides what to do.
func (r *SourceEntryRepositoryImpl) Create(ctx context.Context, entry *entity.SourceEntry) error {
	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	var created model.SourceEntry
	if err := r.db.WithContext(ctx).First(&created, "id = ?", m.Id).Error; err != nil {
		return err
	}
	entry.Position = created.Position
	entry.CreatedAt = created.CreatedAt
	return nil
}

func (r *SourceEntryRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return r.db.WithContext(ctx).
		Model(&model.SourceEntry{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *SourceEntryRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.SourceEntry{}, "id = ?", id).Error
}

func (r *SourceEntryRepositoryImpl) DeleteByNamespaceId(ctx context.Context, namespaceId uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.SourceEntry{}, "namespace_id = ?", namespaceId).Error
}

func (r *SourceEntryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SourceEntry, error) {
	var entry model.SourceEntry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&entry), nil
}

func (r *SourceEntryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SourceEntry, error) {
	var entries []*model.SourceEntry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(entries), nil
}

func (r *SourceEntryRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.SourceEntry{}).Count(&count).Error
	return count, err
}
