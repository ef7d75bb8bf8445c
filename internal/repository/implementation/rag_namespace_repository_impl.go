package implementation

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"articlegen-be/internal/entity"
	"articlegen-be/internal/repository/contract"
	"articlegen-be/internal/repository/specification"
)

type RagNamespaceRepositoryImpl struct {
	db *gorm.DB
}

func NewRagNamespaceRepository(db *gorm.DB) contract.RagNamespaceRepository {
	return &RagNamespaceRepositoryImpl{db: db}
}

func (r *RagNamespaceRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *RagNamespaceRepositoryImpl) Create(ctx context.Context, namespace *entity.RagNamespace) error {
	return r.db.WithContext(ctx).Create(namespace).Error
}

func (r *RagNamespaceRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RagNamespace, error) {
	var namespace entity.RagNamespace
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&namespace).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &namespace, nil
}
