package unitofwork

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"articlegen-be/internal/repository/contract"
	"articlegen-be/internal/repository/implementation"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // active transaction, nil when running against the bare handle
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository accessors

func (u *UnitOfWorkImpl) UserRepository() contract.UserRepository {
	return implementation.NewUserRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ArticleRepository() contract.ArticleRepository {
	return implementation.NewArticleRepository(u.getDB())
}

func (u *UnitOfWorkImpl) RagNamespaceRepository() contract.RagNamespaceRepository {
	return implementation.NewRagNamespaceRepository(u.getDB())
}

func (u *UnitOfWorkImpl) SourceEntryRepository() contract.SourceEntryRepository {
	return implementation.NewSourceEntryRepository(u.getDB())
}

func (u *UnitOfWorkImpl) SourceChunkRepository() contract.SourceChunkRepository {
	return implementation.NewSourceChunkRepository(u.getDB())
}

func (u *UnitOfWorkImpl) GenerationThreadRepository() contract.GenerationThreadRepository {
	return implementation.NewGenerationThreadRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ThreadMessageRepository() contract.ThreadMessageRepository {
	return implementation.NewThreadMessageRepository(u.getDB())
}

func (u *UnitOfWorkImpl) NotificationRepository() contract.NotificationRepository {
	return implementation.NewNotificationRepository(u.getDB())
}
