package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"articlegen-be/internal/config"
	"articlegen-be/internal/constant"
	"articlegen-be/internal/dto"
	"articlegen-be/internal/entity"
	"articlegen-be/internal/repository/memory"
	"articlegen-be/internal/repository/specification"
	"articlegen-be/internal/repository/unitofwork"
	"articlegen-be/pkg/apperror"
	"articlegen-be/pkg/events"
	"articlegen-be/pkg/llm"
	pktNats "articlegen-be/pkg/nats"
	"articlegen-be/pkg/rag/agent"
	"articlegen-be/pkg/rag/index"
	"articlegen-be/pkg/rag/prompt"
	"articlegen-be/pkg/rag/search"
)

type IGenerationService interface {
	ExtractKeyPoints(ctx context.Context, userId uuid.UUID, req *dto.ExtractKeyPointsRequest) (*dto.ExtractKeyPointsResponse, error)
	GenerateArticle(ctx context.Context, userId uuid.UUID, req *dto.GenerateArticleRequest) (*dto.GenerateArticleResponse, error)
	RunStatus(ctx context.Context, userId, threadId uuid.UUID) (*dto.RunStatusResponse, error)
}

type generationService struct {
	uowFactory     unitofwork.RepositoryFactory
	llmProvider    llm.LLMProvider
	searchTool     *search.Tool
	runs           *memory.RunRepository
	eventPublisher *pktNats.Publisher
	logger         *log.Logger
	cfg            config.GenerationConfig
}

func NewGenerationService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	searchTool *search.Tool,
	runs *memory.RunRepository,
	eventPublisher *pktNats.Publisher,
	logger *log.Logger,
	cfg config.GenerationConfig,
) IGenerationService {
	return &generationService{
		uowFactory:     uowFactory,
		llmProvider:    llmProvider,
		searchTool:     searchTool,
		runs:           runs,
		eventPublisher: eventPublisher,
		logger:         logger,
		cfg:            cfg,
	}
}

func (s *generationService) newThread(ctx context.Context, userId uuid.UUID) (*entity.GenerationThread, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	thread := &entity.GenerationThread{
		Id:        uuid.New(),
		UserId:    userId,
		CreatedAt: time.Now(),
	}
	if err := uow.GenerationThreadRepository().Create(ctx, thread); err != nil {
		return nil, err
	}
	return thread, nil
}

func (s *generationService) newRunner(userId, articleId uuid.UUID, maxSteps int) *agent.Runner {
	namespace := index.NamespaceName(userId, articleId)
	searchFn := func(ctx context.Context, query string) (string, error) {
		return s.searchTool.Search(ctx, namespace, query)
	}
	return agent.NewRunner(s.llmProvider, searchFn, maxSteps, s.logger)
}

// ExtractKeyPoints runs the two-phase extraction on one fresh thread: an
// exploratory pass that is expected to search the sources, then a
// summarizing pass over the same thread.
func (s *generationService) ExtractKeyPoints(ctx context.Context, userId uuid.UUID, req *dto.ExtractKeyPointsRequest) (*dto.ExtractKeyPointsResponse, error) {
	if userId == uuid.Nil {
		return nil, apperror.Unauthenticated("identity not found")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	article, err := findOwned(ctx, uow, userId, req.ArticleId)
	if err != nil {
		return nil, err
	}

	thread, err := s.newThread(ctx, userId)
	if err != nil {
		return nil, err
	}

	s.runs.Save(&memory.RunState{ThreadId: thread.Id, ArticleId: article.Id, State: memory.RunStateRunning, Step: 1})

	store := newThreadStore(s.uowFactory, thread.Id)
	runner := s.newRunner(userId, article.Id, s.cfg.MaxStepsKeyPoints)

	if _, err := runner.Run(ctx, store, constant.KeyPointsExplorePrompt); err != nil && !apperror.Is(err, apperror.CodeStepBudgetExhausted) {
		s.runs.Save(&memory.RunState{ThreadId: thread.Id, ArticleId: article.Id, State: memory.RunStateFailed, Error: err.Error()})
		return nil, err
	}

	s.runs.Save(&memory.RunState{ThreadId: thread.Id, ArticleId: article.Id, State: memory.RunStateRunning, Step: 2})

	keyPoints, err := runner.Run(ctx, store, constant.KeyPointsSummarizePrompt)
	status := "completed"
	if err != nil {
		if !apperror.Is(err, apperror.CodeStepBudgetExhausted) {
			s.runs.Save(&memory.RunState{ThreadId: thread.Id, ArticleId: article.Id, State: memory.RunStateFailed, Error: err.Error()})
			return nil, err
		}
		status = "exhausted"
	}

	if status == "completed" {
		s.runs.Save(&memory.RunState{ThreadId: thread.Id, ArticleId: article.Id, State: memory.RunStateCompleted})
	} else {
		s.runs.Save(&memory.RunState{ThreadId: thread.Id, ArticleId: article.Id, State: memory.RunStateExhausted})
	}

	return &dto.ExtractKeyPointsResponse{
		ThreadId:  thread.Id,
		KeyPoints: keyPoints,
		Status:    status,
	}, nil
}

// GenerateArticle drafts the article from approved key points and persists
// the result, flipping the article from draft to completed.
func (s *generationService) GenerateArticle(ctx context.Context, userId uuid.UUID, req *dto.GenerateArticleRequest) (*dto.GenerateArticleResponse, error) {
	if userId == uuid.Nil {
		return nil, apperror.Unauthenticated("identity not found")
	}

	settings := entity.ArticleSettings{
		Length:       req.Settings.Length,
		Tone:         req.Settings.Tone,
		Angle:        req.Settings.Angle,
		CustomPrompt: req.Settings.CustomPrompt,
	}
	if err := prompt.ValidateSettings(settings); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	article, err := findOwned(ctx, uow, userId, req.ArticleId)
	if err != nil {
		return nil, err
	}

	thread, err := s.newThread(ctx, userId)
	if err != nil {
		return nil, err
	}

	s.runs.Save(&memory.RunState{ThreadId: thread.Id, ArticleId: article.Id, State: memory.RunStateRunning, Step: 1})

	store := newThreadStore(s.uowFactory, thread.Id)
	runner := s.newRunner(userId, article.Id, s.cfg.MaxStepsDraft)

	basePrompt := prompt.BuildArticlePrompt(req.KeyPoints, settings)

	content, err := runner.Run(ctx, store, basePrompt)
	status := "completed"
	if err != nil {
		if !apperror.Is(err, apperror.CodeStepBudgetExhausted) {
			s.runs.Save(&memory.RunState{ThreadId: thread.Id, ArticleId: article.Id, State: memory.RunStateFailed, Error: err.Error()})
			return nil, err
		}
		status = "exhausted"
	}

	if content == "" {
		s.runs.Save(&memory.RunState{ThreadId: thread.Id, ArticleId: article.Id, State: memory.RunStateExhausted, Error: "no draft produced"})
		return nil, apperror.Newf(apperror.CodeStepBudgetExhausted, "run produced no draft within %d steps", s.cfg.MaxStepsDraft)
	}

	now := time.Now()
	article.Settings = settings
	article.GeneratedContent = &content
	article.Status = entity.ArticleStatusCompleted
	article.UpdatedAt = &now
	if err := uow.ArticleRepository().Update(ctx, article); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.NewArticleCompleted(userId, article.Id, article.Title)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.logger.Printf("[WARN] Failed to publish ARTICLE_COMPLETED event: %v", err)
		}
	}

	if status == "completed" {
		s.runs.Save(&memory.RunState{ThreadId: thread.Id, ArticleId: article.Id, State: memory.RunStateCompleted})
	} else {
		s.runs.Save(&memory.RunState{ThreadId: thread.Id, ArticleId: article.Id, State: memory.RunStateExhausted})
	}

	return &dto.GenerateArticleResponse{
		ThreadId: thread.Id,
		Content:  content,
		Status:   status,
	}, nil
}

func (s *generationService) RunStatus(ctx context.Context, userId, threadId uuid.UUID) (*dto.RunStatusResponse, error) {
	if userId == uuid.Nil {
		return nil, apperror.Unauthenticated("identity not found")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	thread, err := uow.GenerationThreadRepository().FindOne(ctx, specification.ByID{ID: threadId})
	if err != nil {
		return nil, err
	}
	if thread == nil || thread.UserId != userId {
		return nil, apperror.NotFound("generation thread")
	}

	state, found := s.runs.Get(threadId)
	if !found {
		return nil, apperror.NotFound("generation run")
	}

	return &dto.RunStatusResponse{
		ThreadId: threadId,
		State:    state.State,
		Step:     state.Step,
		Error:    state.Error,
	}, nil
}
