package implementation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"articlegen-be/internal/entity"
	"articlegen-be/internal/repository/contract"
	"articlegen-be/internal/repository/specification"
)

type GenerationThreadRepositoryImpl struct {
	db *gorm.DB
}

func NewGenerationThreadRepository(db *gorm.DB) contract.GenerationThreadRepository {
	return &GenerationThreadRepositoryImpl{db: db}
}

func (r *GenerationThreadRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GenerationThreadRepositoryImpl) Create(ctx context.Context, thread *entity.GenerationThread) error {
	return r.db.WithContext(ctx).Create(thread).Error
}

func (r *GenerationThreadRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GenerationThread, error) {
	var thread entity.GenerationThread
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&thread).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &thread, nil
}

type ThreadMessageRepositoryImpl struct {
	db *gorm.DB
}

func NewThreadMessageRepository(db *gorm.DB) contract.ThreadMessageRepository {
	return &ThreadMessageRepositoryImpl{db: db}
}

func (r *ThreadMessageRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ThreadMessageRepositoryImpl) Create(ctx context.Context, message *entity.ThreadMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// FindAll returns turns in insertion order so a resumed run replays the
// conversation exactly as it happened.
func (r *ThreadMessageRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ThreadMessage, error) {
	var messages []*entity.ThreadMessage
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Order("position ASC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
