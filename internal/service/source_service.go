package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"articlegen-be/internal/dto"
	"articlegen-be/internal/entity"
	"articlegen-be/internal/repository/specification"
	"articlegen-be/internal/repository/unitofwork"
	"articlegen-be/pkg/apperror"
	"articlegen-be/pkg/blob"
	"articlegen-be/pkg/extractor"
	"articlegen-be/pkg/rag/index"
	"articlegen-be/pkg/rag/search"
)

type ISourceService interface {
	Ingest(ctx context.Context, userId uuid.UUID, req *dto.AddSourceRequest) (*dto.AddSourceResponse, error)
	ListSources(ctx context.Context, userId, articleId uuid.UUID, cursor int64, pageSize int) (*dto.ListSourcesResponse, error)
	DeleteSource(ctx context.Context, userId, articleId, entryId uuid.UUID) error
	SearchSources(ctx context.Context, userId uuid.UUID, req *dto.SearchSourcesRequest) (*dto.SearchSourcesResponse, error)
}

type sourceService struct {
	uowFactory       unitofwork.RepositoryFactory
	ragIndex         *index.Index
	searchTool       *search.Tool
	blobStore        blob.Store
	textExtractor    *extractor.Extractor
	publisherService IPublisherService
}

func NewSourceService(
	uowFactory unitofwork.RepositoryFactory,
	ragIndex *index.Index,
	searchTool *search.Tool,
	blobStore blob.Store,
	textExtractor *extractor.Extractor,
	publisherService IPublisherService,
) ISourceService {
	return &sourceService{
		uowFactory:       uowFactory,
		ragIndex:         ragIndex,
		searchTool:       searchTool,
		blobStore:        blobStore,
		textExtractor:    textExtractor,
		publisherService: publisherService,
	}
}

// guessMimeType fills in a missing content type: extension first, then the
// file's magic bytes, then the generic fallback.
func guessMimeType(filename string, data []byte) string {
	if byExt := mime.TypeByExtension(filepath.Ext(filename)); byExt != "" {
		return byExt
	}
	if detected := mimetype.Detect(data); detected != nil {
		return detected.String()
	}
	return "application/octet-stream"
}

func (s *sourceService) Ingest(ctx context.Context, userId uuid.UUID, req *dto.AddSourceRequest) (*dto.AddSourceResponse, error) {
	if userId == uuid.Nil {
		return nil, apperror.Unauthenticated("identity not found")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	article, err := findOwned(ctx, uow, userId, req.ArticleId)
	if err != nil {
		return nil, err
	}

	mimeType := req.MimeType
	if mimeType == "" {
		mimeType = guessMimeType(req.Filename, req.Bytes)
	}

	storageRef, err := s.blobStore.Put(ctx, req.Bytes, req.Filename)
	if err != nil {
		return nil, err
	}
	fileURL := s.blobStore.URLFor(storageRef)

	text, err := s.textExtractor.Extract(ctx, req.Bytes, mimeType, req.Filename, fileURL)
	if err != nil {
		// The blob is orphaned otherwise.
		if derr := s.blobStore.Delete(ctx, storageRef); derr != nil {
			fmt.Printf("[WARN] Failed to delete blob %s after extraction failure: %v\n", storageRef, derr)
		}
		return nil, err
	}

	hash := sha256.Sum256(req.Bytes)
	contentHash := hex.EncodeToString(hash[:])

	namespaceName := index.NamespaceName(userId, article.Id)
	metadata := entity.SourceMetadata{
		OwnerId:    userId.String(),
		StorageRef: storageRef,
		Filename:   req.Filename,
		Kind:       req.Kind,
	}

	result, err := s.ragIndex.AddEntry(ctx, namespaceName, req.Filename, req.Filename, metadata, contentHash)
	if err != nil {
		if derr := s.blobStore.Delete(ctx, storageRef); derr != nil {
			fmt.Printf("[WARN] Failed to delete blob %s after index failure: %v\n", storageRef, derr)
		}
		return nil, err
	}

	if !result.Created {
		// Same bytes already indexed for this article. The fresh blob must
		// not linger; the existing entry keeps serving its own copy.
		if derr := s.blobStore.Delete(ctx, storageRef); derr != nil {
			fmt.Printf("[WARN] Failed to delete duplicate blob %s: %v\n", storageRef, derr)
		}

		existing, ferr := uow.SourceEntryRepository().FindOne(ctx, specification.ByID{ID: result.EntryId})
		if ferr != nil {
			return nil, ferr
		}
		url := ""
		if existing != nil && existing.Metadata.StorageRef != "" {
			url = s.blobStore.URLFor(existing.Metadata.StorageRef)
		}
		return &dto.AddSourceResponse{EntryId: result.EntryId, Created: false, Url: url}, nil
	}

	msgPayload := dto.PublishEmbedSourceMessage{
		EntryId:   result.EntryId,
		UserId:    userId,
		ArticleId: article.Id,
		Title:     req.Filename,
		Text:      text,
	}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	return &dto.AddSourceResponse{EntryId: result.EntryId, Created: true, Url: fileURL}, nil
}

func (s *sourceService) ListSources(ctx context.Context, userId, articleId uuid.UUID, cursor int64, pageSize int) (*dto.ListSourcesResponse, error) {
	if userId == uuid.Nil {
		return nil, apperror.Unauthenticated("identity not found")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := findOwned(ctx, uow, userId, articleId); err != nil {
		return nil, err
	}

	page, err := s.ragIndex.List(ctx, index.NamespaceName(userId, articleId), cursor, pageSize)
	if err != nil {
		return nil, err
	}

	resp := &dto.ListSourcesResponse{
		Page:       make([]*dto.PublicFile, len(page.Entries)),
		IsDone:     !page.HasMore,
		NextCursor: page.NextCursor,
	}
	for i, entry := range page.Entries {
		resp.Page[i] = s.toPublicFile(entry)
	}
	return resp, nil
}

func (s *sourceService) DeleteSource(ctx context.Context, userId, articleId, entryId uuid.UUID) error {
	if userId == uuid.Nil {
		return apperror.Unauthenticated("identity not found")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := findOwned(ctx, uow, userId, articleId); err != nil {
		return err
	}

	entry, err := uow.SourceEntryRepository().FindOne(ctx, specification.ByID{ID: entryId})
	if err != nil {
		return err
	}
	if entry == nil || entry.Metadata.OwnerId != userId.String() {
		return apperror.NotFound("source entry")
	}

	if entry.Metadata.StorageRef != "" {
		if derr := s.blobStore.Delete(ctx, entry.Metadata.StorageRef); derr != nil {
			fmt.Printf("[WARN] Failed to delete blob %s: %v\n", entry.Metadata.StorageRef, derr)
		}
	}

	return s.ragIndex.Delete(ctx, entryId)
}

func (s *sourceService) SearchSources(ctx context.Context, userId uuid.UUID, req *dto.SearchSourcesRequest) (*dto.SearchSourcesResponse, error) {
	if userId == uuid.Nil {
		return nil, apperror.Unauthenticated("identity not found")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if _, err := findOwned(ctx, uow, userId, req.ArticleId); err != nil {
		return nil, err
	}

	answer, err := s.searchTool.Search(ctx, index.NamespaceName(userId, req.ArticleId), req.Query)
	if err != nil {
		return nil, err
	}
	return &dto.SearchSourcesResponse{Answer: answer}, nil
}

func (s *sourceService) toPublicFile(entry *entity.SourceEntry) *dto.PublicFile {
	filename := entry.Key
	if filename == "" {
		filename = "Unknown"
	}

	extension := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if extension == "" {
		extension = "txt"
	}

	status := "error"
	switch entry.Status {
	case entity.SourceStatusReady:
		status = "ready"
	case entity.SourceStatusPending:
		status = "processing"
	}

	var url *string
	if entry.Metadata.StorageRef != "" {
		u := s.blobStore.URLFor(entry.Metadata.StorageRef)
		url = &u
	}

	return &dto.PublicFile{
		Id:     entry.Id,
		Name:   filename,
		Type:   extension,
		Status: status,
		Url:    url,
		Kind:   entry.Kind,
	}
}
