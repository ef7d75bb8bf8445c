package contract

import (
	"context"

	"github.com/google/uuid"

	"articlegen-be/internal/entity"
	"articlegen-be/internal/repository/specification"
)

type ArticleRepository interface {
	Create(ctx context.Context, article *entity.Article) error
	Update(ctx context.Context, article *entity.Article) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Article, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Article, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
