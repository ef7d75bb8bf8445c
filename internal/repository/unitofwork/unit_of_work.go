package unitofwork

import (
	"context"

	"articlegen-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ArticleRepository() contract.ArticleRepository
	RagNamespaceRepository() contract.RagNamespaceRepository
	SourceEntryRepository() contract.SourceEntryRepository
	SourceChunkRepository() contract.SourceChunkRepository

	GenerationThreadRepository() contract.GenerationThreadRepository
	ThreadMessageRepository() contract.ThreadMessageRepository
	NotificationRepository() contract.NotificationRepository
}
