package contract

import (
	"context"

	"articlegen-be/internal/entity"
	"articlegen-be/internal/repository/specification"
)

type RagNamespaceRepository interface {
	Create(ctx context.Context, namespace *entity.RagNamespace) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RagNamespace, error)
}
