package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"articlegen-be/internal/dto"
	"articlegen-be/internal/entity"
	"articlegen-be/internal/repository/specification"
	"articlegen-be/internal/repository/unitofwork"
	"articlegen-be/pkg/apperror"
	"articlegen-be/pkg/blob"
	"articlegen-be/pkg/rag/index"
)

type IArticleService interface {
	Create(ctx context.Context, userId uuid.UUID) (*dto.CreateArticleResponse, error)
	Show(ctx context.Context, userId, id uuid.UUID) (*dto.ShowArticleResponse, error)
	List(ctx context.Context, userId uuid.UUID, limit, offset int) (*dto.ListArticlesResponse, error)
	UpdateTitle(ctx context.Context, userId uuid.UUID, req *dto.UpdateArticleTitleRequest) error
	Delete(ctx context.Context, userId, id uuid.UUID) error
}

type articleService struct {
	uowFactory unitofwork.RepositoryFactory
	ragIndex   *index.Index
	blobStore  blob.Store
}

func NewArticleService(uowFactory unitofwork.RepositoryFactory, ragIndex *index.Index, blobStore blob.Store) IArticleService {
	return &articleService{
		uowFactory: uowFactory,
		ragIndex:   ragIndex,
		blobStore:  blobStore,
	}
}

// findOwned resolves an article while enforcing ownership. Not found and
// not yours collapse into NotFound so the API does not leak which ids exist.
func findOwned(ctx context.Context, uow unitofwork.UnitOfWork, userId, id uuid.UUID) (*entity.Article, error) {
	article, err := uow.ArticleRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if article == nil || article.UserId != userId {
		return nil, apperror.NotFound("article")
	}
	return article, nil
}

func (s *articleService) Create(ctx context.Context, userId uuid.UUID) (*dto.CreateArticleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	article := &entity.Article{
		Id:        uuid.New(),
		UserId:    userId,
		Title:     "Untitled article",
		Status:    entity.ArticleStatusDraft,
		CreatedAt: time.Now(),
	}

	if err := uow.ArticleRepository().Create(ctx, article); err != nil {
		return nil, err
	}

	return &dto.CreateArticleResponse{Id: article.Id}, nil
}

func (s *articleService) Show(ctx context.Context, userId, id uuid.UUID) (*dto.ShowArticleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	article, err := findOwned(ctx, uow, userId, id)
	if err != nil {
		return nil, err
	}
	return toArticleResponse(article), nil
}

func (s *articleService) List(ctx context.Context, userId uuid.UUID, limit, offset int) (*dto.ListArticlesResponse, error) {
	if limit <= 0 {
		limit = 20
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	articles, err := uow.ArticleRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	)
	if err != nil {
		return nil, err
	}

	total, err := uow.ArticleRepository().Count(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	resp := &dto.ListArticlesResponse{
		Articles: make([]*dto.ShowArticleResponse, len(articles)),
		Total:    total,
	}
	for i, a := range articles {
		resp.Articles[i] = toArticleResponse(a)
	}
	return resp, nil
}

func (s *articleService) UpdateTitle(ctx context.Context, userId uuid.UUID, req *dto.UpdateArticleTitleRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	article, err := findOwned(ctx, uow, userId, req.Id)
	if err != nil {
		return err
	}

	now := time.Now()
	article.Title = req.Title
	article.UpdatedAt = &now

	return uow.ArticleRepository().Update(ctx, article)
}

// Delete removes the article and its whole retrieval namespace, including
// the stored source files.
func (s *articleService) Delete(ctx context.Context, userId, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	article, err := findOwned(ctx, uow, userId, id)
	if err != nil {
		return err
	}

	namespaceName := index.NamespaceName(userId, article.Id)

	// Release blobs before dropping the entries that reference them.
	page, err := s.ragIndex.List(ctx, namespaceName, 0, 1000)
	if err != nil {
		return err
	}
	for _, entry := range page.Entries {
		if entry.Metadata.StorageRef != "" {
			if derr := s.blobStore.Delete(ctx, entry.Metadata.StorageRef); derr != nil {
				fmt.Printf("[WARN] Failed to delete blob %s: %v\n", entry.Metadata.StorageRef, derr)
			}
		}
	}

	if err := s.ragIndex.DeleteNamespace(ctx, namespaceName); err != nil {
		return err
	}

	return uow.ArticleRepository().Delete(ctx, id)
}

func toArticleResponse(a *entity.Article) *dto.ShowArticleResponse {
	resp := &dto.ShowArticleResponse{
		Id:               a.Id,
		Title:            a.Title,
		Status:           a.Status,
		GeneratedContent: a.GeneratedContent,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
	if a.Settings != (entity.ArticleSettings{}) {
		resp.Settings = &dto.ArticleSettingsPayload{
			Length:       a.Settings.Length,
			Tone:         a.Settings.Tone,
			Angle:        a.Settings.Angle,
			CustomPrompt: a.Settings.CustomPrompt,
		}
	}
	return resp
}
