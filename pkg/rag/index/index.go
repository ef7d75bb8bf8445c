package index

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"articlegen-be/internal/entity"
	"articlegen-be/internal/repository/specification"
	"articlegen-be/internal/repository/unitofwork"
	"articlegen-be/pkg/embedding"
	"articlegen-be/pkg/utils"
)

const (
	chunkSize    = 1500
	chunkOverlap = 200
)

// Index is the retrieval store: namespaced entries split into embedded
// chunks. All reads and writes are confined to a single namespace; nothing
// here ever crosses namespaces.
type Index struct {
	repoFactory       unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	logger            *log.Logger
}

func NewIndex(repoFactory unitofwork.RepositoryFactory, embeddingProvider embedding.EmbeddingProvider, logger *log.Logger) *Index {
	return &Index{
		repoFactory:       repoFactory,
		embeddingProvider: embeddingProvider,
		logger:            logger,
	}
}

// AddResult reports the outcome of an Add: the entry that now represents the
// content in the namespace, and whether this call created it.
type AddResult struct {
	EntryId uuid.UUID
	Created bool
}

// SearchResult carries both the concatenated context text handed to the
// model and the distinct entries it was drawn from.
type SearchResult struct {
	Text    string
	Entries []*entity.SourceEntry
	Chunks  []*entity.SourceChunk
}

// ListPage is one insertion-ordered page of entries.
type ListPage struct {
	Entries    []*entity.SourceEntry
	NextCursor int64
	HasMore    bool
}

// UpsertNamespace resolves a namespace by name, creating it on first use.
// Concurrent first uses race on the unique name; the loser re-fetches the
// winner's row.
func (i *Index) UpsertNamespace(ctx context.Context, name string) (*entity.RagNamespace, error) {
	uow := i.repoFactory.NewUnitOfWork(ctx)

	existing, err := uow.RagNamespaceRepository().FindOne(ctx, specification.ByNamespaceName{Name: name})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	namespace := &entity.RagNamespace{
		Id:   uuid.New(),
		Name: name,
	}
	if err := uow.RagNamespaceRepository().Create(ctx, namespace); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return uow.RagNamespaceRepository().FindOne(ctx, specification.ByNamespaceName{Name: name})
		}
		return nil, err
	}
	return namespace, nil
}

// Add ingests one piece of content into the namespace and embeds it in the
// same call. Convenience wrapper over AddEntry + EmbedEntry for callers that
// do not run an async pipeline.
func (i *Index) Add(ctx context.Context, namespaceName, text, key, title string, metadata entity.SourceMetadata, contentHash string) (*AddResult, error) {
	result, err := i.AddEntry(ctx, namespaceName, key, title, metadata, contentHash)
	if err != nil {
		return nil, err
	}
	if !result.Created {
		return result, nil
	}
	if err := i.EmbedEntry(ctx, result.EntryId, text); err != nil {
		return nil, err
	}
	return result, nil
}

// AddEntry registers content in the namespace without embedding it. The
// entry starts out pending and serves no retrieval until EmbedEntry marks
// it ready. Duplicate content (same hash, same namespace) is reported with
// Created=false and the existing entry id; nothing is written in that case.
func (i *Index) AddEntry(ctx context.Context, namespaceName, key, title string, metadata entity.SourceMetadata, contentHash string) (*AddResult, error) {
	namespace, err := i.UpsertNamespace(ctx, namespaceName)
	if err != nil {
		return nil, err
	}

	uow := i.repoFactory.NewUnitOfWork(ctx)

	entry := &entity.SourceEntry{
		Id:          uuid.New(),
		NamespaceId: namespace.Id,
		Key:         key,
		Title:       title,
		ContentHash: contentHash,
		Status:      entity.SourceStatusPending,
		Kind:        metadata.Kind,
		Metadata:    metadata,
	}

	if err := uow.SourceEntryRepository().Create(ctx, entry); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the insert race or re-sent content. The winner's entry is
			// the canonical one.
			winner, ferr := uow.SourceEntryRepository().FindOne(ctx,
				specification.ByNamespaceID{NamespaceID: namespace.Id},
				specification.ByContentHash{Hash: contentHash},
			)
			if ferr != nil {
				return nil, ferr
			}
			if winner == nil {
				return nil, fmt.Errorf("duplicate content hash but no existing entry found")
			}
			i.logger.Printf("[INDEX] Duplicate content in namespace %s, reusing entry %s", namespaceName, winner.Id)
			return &AddResult{EntryId: winner.Id, Created: false}, nil
		}
		return nil, err
	}

	return &AddResult{EntryId: entry.Id, Created: true}, nil
}

// EmbedEntry chunks the text, embeds every chunk, and flips the entry to
// ready. A failure anywhere marks the entry errored; errored entries stay
// visible in listings but never serve retrieval.
func (i *Index) EmbedEntry(ctx context.Context, entryId uuid.UUID, text string) error {
	uow := i.repoFactory.NewUnitOfWork(ctx)

	pieces := utils.SplitText(text, chunkSize, chunkOverlap)

	chunks := make([]*entity.SourceChunk, 0, len(pieces))
	for idx, piece := range pieces {
		res, err := i.embeddingProvider.Generate(piece, "RETRIEVAL_DOCUMENT")
		if err != nil {
			i.markErrored(ctx, uow, entryId)
			return fmt.Errorf("embedding chunk %d: %w", idx, err)
		}
		chunks = append(chunks, &entity.SourceChunk{
			Id:         uuid.New(),
			EntryId:    entryId,
			ChunkIndex: idx,
			Text:       piece,
			Embedding:  res.Embedding.Values,
		})
	}

	if err := uow.SourceChunkRepository().CreateBulk(ctx, chunks); err != nil {
		i.markErrored(ctx, uow, entryId)
		return err
	}

	return uow.SourceEntryRepository().UpdateStatus(ctx, entryId, entity.SourceStatusReady)
}

func (i *Index) markErrored(ctx context.Context, uow unitofwork.UnitOfWork, entryId uuid.UUID) {
	if err := uow.SourceEntryRepository().UpdateStatus(ctx, entryId, entity.SourceStatusError); err != nil {
		i.logger.Printf("[ERROR] Failed to mark entry %s as errored: %v", entryId, err)
	}
}

// Search embeds the query and returns the closest ready chunks in the
// namespace. An unknown or empty namespace yields an empty result, not an
// error; the caller decides how to phrase "nothing found".
func (i *Index) Search(ctx context.Context, namespaceName, query string, limit int) (*SearchResult, error) {
	if limit <= 0 {
		limit = 5
	}

	uow := i.repoFactory.NewUnitOfWork(ctx)

	namespace, err := uow.RagNamespaceRepository().FindOne(ctx, specification.ByNamespaceName{Name: namespaceName})
	if err != nil {
		return nil, err
	}
	if namespace == nil {
		return &SearchResult{}, nil
	}

	embeddingRes, err := i.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}

	scored, err := uow.SourceChunkRepository().SearchSimilar(ctx, namespace.Id, embeddingRes.Embedding.Values, limit)
	if err != nil {
		i.logger.Printf("[ERROR] Vector search failed: %v", err)
		return nil, err
	}

	result := &SearchResult{}
	seenEntries := make(map[uuid.UUID]bool)
	var sb strings.Builder

	for _, s := range scored {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(fmt.Sprintf("[%s]\n%s", s.EntryTitle, s.Chunk.Text))
		result.Chunks = append(result.Chunks, s.Chunk)

		if !seenEntries[s.EntryId] {
			seenEntries[s.EntryId] = true
			entry, ferr := uow.SourceEntryRepository().FindOne(ctx, specification.ByID{ID: s.EntryId})
			if ferr != nil {
				i.logger.Printf("[WARN] Failed to hydrate entry %s: %v", s.EntryId, ferr)
				continue
			}
			if entry != nil {
				result.Entries = append(result.Entries, entry)
			}
		}
	}

	result.Text = sb.String()
	return result, nil
}

// List pages through a namespace's entries in insertion order. The cursor is
// the position of the last entry of the previous page; pass 0 to start.
func (i *Index) List(ctx context.Context, namespaceName string, cursor int64, pageSize int) (*ListPage, error) {
	if pageSize <= 0 {
		pageSize = 20
	}

	uow := i.repoFactory.NewUnitOfWork(ctx)

	namespace, err := uow.RagNamespaceRepository().FindOne(ctx, specification.ByNamespaceName{Name: namespaceName})
	if err != nil {
		return nil, err
	}
	if namespace == nil {
		return &ListPage{}, nil
	}

	// Fetch one extra row to learn whether another page exists.
	entries, err := uow.SourceEntryRepository().FindAll(ctx,
		specification.ByNamespaceID{NamespaceID: namespace.Id},
		specification.AfterPosition{Position: cursor},
		specification.OrderBy{Field: "position"},
		specification.Limit{N: pageSize + 1},
	)
	if err != nil {
		return nil, err
	}

	page := &ListPage{}
	if len(entries) > pageSize {
		page.HasMore = true
		entries = entries[:pageSize]
	}
	page.Entries = entries
	if len(entries) > 0 {
		page.NextCursor = entries[len(entries)-1].Position
	}
	return page, nil
}

// Delete removes one entry and every chunk derived from it.
func (i *Index) Delete(ctx context.Context, entryId uuid.UUID) error {
	uow := i.repoFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.SourceChunkRepository().DeleteByEntryId(ctx, entryId); err != nil {
		return err
	}
	if err := uow.SourceEntryRepository().Delete(ctx, entryId); err != nil {
		return err
	}

	return uow.Commit()
}

// DeleteNamespace drops a whole namespace with its entries and chunks. Used
// when the owning article is deleted.
func (i *Index) DeleteNamespace(ctx context.Context, namespaceName string) error {
	uow := i.repoFactory.NewUnitOfWork(ctx)

	namespace, err := uow.RagNamespaceRepository().FindOne(ctx, specification.ByNamespaceName{Name: namespaceName})
	if err != nil {
		return err
	}
	if namespace == nil {
		return nil
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.SourceChunkRepository().DeleteByNamespaceId(ctx, namespace.Id); err != nil {
		return err
	}
	if err := uow.SourceEntryRepository().DeleteByNamespaceId(ctx, namespace.Id); err != nil {
		return err
	}

	return uow.Commit()
}

// NamespaceName derives the canonical namespace for an article. Scoping the
// name by owner keeps a forged article id from reading someone else's index.
func NamespaceName(ownerId, articleId uuid.UUID) string {
	return ownerId.String() + ":" + articleId.String()
}
