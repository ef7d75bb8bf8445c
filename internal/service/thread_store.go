package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"articlegen-be/internal/entity"
	"articlegen-be/internal/repository/specification"
	"articlegen-be/internal/repository/unitofwork"
	"articlegen-be/pkg/llm"
)

// dbThreadStore adapts the thread repositories to the agent's append-only
// conversation contract.
type dbThreadStore struct {
	uowFactory unitofwork.RepositoryFactory
	threadId   uuid.UUID
}

func newThreadStore(uowFactory unitofwork.RepositoryFactory, threadId uuid.UUID) *dbThreadStore {
	return &dbThreadStore{
		uowFactory: uowFactory,
		threadId:   threadId,
	}
}

func (s *dbThreadStore) Append(ctx context.Context, role, content, toolName string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.ThreadMessageRepository().Create(ctx, &entity.ThreadMessage{
		Id:        uuid.New(),
		ThreadId:  s.threadId,
		Role:      role,
		Content:   content,
		ToolName:  toolName,
		CreatedAt: time.Now(),
	})
}

func (s *dbThreadStore) History(ctx context.Context) ([]llm.Message, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	messages, err := uow.ThreadMessageRepository().FindAll(ctx, specification.ByThreadID{ThreadID: s.threadId})
	if err != nil {
		return nil, err
	}

	history := make([]llm.Message, len(messages))
	for i, m := range messages {
		history[i] = llm.Message{
			Role:     m.Role,
			Content:  m.Content,
			ToolName: m.ToolName,
		}
	}
	return history, nil
}
