package contract

import (
	"context"

	"github.com/google/uuid"

	"articlegen-be/internal/entity"
	"articlegen-be/internal/repository/specification"
)

type SourceEntryRepository interface {
	Create(ctx context.Context, entry *entity.SourceEntry) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByNamespaceId(ctx context.Context, namespaceId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SourceEntry, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SourceEntry, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
