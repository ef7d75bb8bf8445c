package contract

import (
	"context"

	"articlegen-be/internal/entity"
	"articlegen-be/internal/repository/specification"
)

type GenerationThreadRepository interface {
	Create(ctx context.Context, thread *entity.GenerationThread) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GenerationThread, error)
}

type ThreadMessageRepository interface {
	Create(ctx context.Context, message *entity.ThreadMessage) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ThreadMessage, error)
}
