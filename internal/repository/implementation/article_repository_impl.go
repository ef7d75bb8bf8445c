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

type ArticleRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ArticleMapper
}

func NewArticleRepository(db *gorm.DB) contract.ArticleRepository {
	return &ArticleRepositoryImpl{db: db, mapper: mapper.NewArticleMapper()}
}

func (r *ArticleRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ArticleRepositoryImpl) Create(ctx context.Context, article *entity.Article) error {
	return r.db.WithContext(ctx).Create(r.mapper.ToModel(article)).Error
}

func (r *ArticleRepositoryImpl) Update(ctx context.Context, article *entity.Article) error {
	return r.db.WithContext(ctx).Save(r.mapper.ToModel(article)).Error
}

func (r *ArticleRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Article{}, "id = ?", id).Error
}

func (r *ArticleRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Article, error) {
	var article model.Article
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&article).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&article), nil
}

func (r *ArticleRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Article, error) {
	var articles []*model.Article
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&articles).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(articles), nil
}

func (r *ArticleRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Article{}).Count(&count).Error
	return count, err
}
