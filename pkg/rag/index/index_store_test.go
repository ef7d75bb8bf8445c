package index

import (
	"context"
	"errors"
	"io"
	"log"
	"math"
	"sort"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"articlegen-be/internal/entity"
	"articlegen-be/internal/repository/contract"
	"articlegen-be/internal/repository/specification"
	"articlegen-be/internal/repository/unitofwork"
	"articlegen-be/pkg/embedding"
)

// fakeStore backs the repository fakes with in-memory tables, interpreting
// the same specification values the GORM implementations translate to SQL.
type fakeStore struct {
	mu         sync.Mutex
	namespaces []*entity.RagNamespace
	entries    []*entity.SourceEntry
	chunks     []*entity.SourceChunk
	entryPos   int64
	chunkPos   int64
}

type fakeFactory struct{ store *fakeStore }

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUow{store: f.store}
}

type fakeUow struct{ store *fakeStore }

func (u *fakeUow) Begin(ctx context.Context) error { return nil }
func (u *fakeUow) Commit() error                   { return nil }
func (u *fakeUow) Rollback() error                 { return nil }

func (u *fakeUow) UserRepository() contract.UserRepository       { return nil }
func (u *fakeUow) ArticleRepository() contract.ArticleRepository { return nil }
func (u *fakeUow) RagNamespaceRepository() contract.RagNamespaceRepository {
	return &fakeNamespaceRepo{store: u.store}
}
func (u *fakeUow) SourceEntryRepository() contract.SourceEntryRepository {
	return &fakeEntryRepo{store: u.store}
}
func (u *fakeUow) SourceChunkRepository() contract.SourceChunkRepository {
	return &fakeChunkRepo{store: u.store}
}
func (u *fakeUow) GenerationThreadRepository() contract.GenerationThreadRepository { return nil }
func (u *fakeUow) ThreadMessageRepository() contract.ThreadMessageRepository       { return nil }
func (u *fakeUow) NotificationRepository() contract.NotificationRepository         { return nil }

type fakeNamespaceRepo struct{ store *fakeStore }

func (r *fakeNamespaceRepo) Create(ctx context.Context, namespace *entity.RagNamespace) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.namespaces {
		if existing.Name == namespace.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *namespace
	r.store.namespaces = append(r.store.namespaces, &cp)
	return nil
}

func (r *fakeNamespaceRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RagNamespace, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, ns := range r.store.namespaces {
		match := true
		for _, s := range specs {
			if v, ok := s.(specification.ByNamespaceName); ok && ns.Name != v.Name {
				match = false
			}
		}
		if match {
			cp := *ns
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeEntryRepo struct{ store *fakeStore }

func matchEntry(e *entity.SourceEntry, specs []specification.Specification) bool {
	for _, s := range specs {
		switch v := s.(type) {
		case specification.ByID:
			if e.Id != v.ID {
				return false
			}
		case specification.ByNamespaceID:
			if e.NamespaceId != v.NamespaceID {
				return false
			}
		case specification.ByContentHash:
			if e.ContentHash != v.Hash {
				return false
			}
		case specification.AfterPosition:
			if e.Position <= v.Position {
				return false
			}
		}
	}
	return true
}

func (r *fakeEntryRepo) Create(ctx context.Context, entry *entity.SourceEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.entries {
		if existing.NamespaceId == entry.NamespaceId && existing.ContentHash == entry.ContentHash {
			return gorm.ErrDuplicatedKey
		}
	}
	r.store.entryPos++
	entry.Position = r.store.entryPos
	cp := *entry
	r.store.entries = append(r.store.entries, &cp)
	return nil
}

func (r *fakeEntryRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, e := range r.store.entries {
		if e.Id == id {
			e.Status = status
			return nil
		}
	}
	return nil
}

func (r *fakeEntryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.entries[:0]
	for _, e := range r.store.entries {
		if e.Id != id {
			kept = append(kept, e)
		}
	}
	r.store.entries = kept
	return nil
}

func (r *fakeEntryRepo) DeleteByNamespaceId(ctx context.Context, namespaceId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.entries[:0]
	for _, e := range r.store.entries {
		if e.NamespaceId != namespaceId {
			kept = append(kept, e)
		}
	}
	r.store.entries = kept
	return nil
}

func (r *fakeEntryRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.SourceEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, e := range r.store.entries {
		if matchEntry(e, specs) {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeEntryRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SourceEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*entity.SourceEntry
	for _, e := range r.store.entries {
		if matchEntry(e, specs) {
			cp := *e
			out = append(out, &cp)
		}
	}

	limit := 0
	for _, s := range specs {
		switch v := s.(type) {
		case specification.OrderBy:
			if v.Field == "position" {
				sort.Slice(out, func(a, b int) bool {
					if v.Desc {
						return out[a].Position > out[b].Position
					}
					return out[a].Position < out[b].Position
				})
			}
		case specification.Limit:
			limit = v.N
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeEntryRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

type fakeChunkRepo struct{ store *fakeStore }

func (r *fakeChunkRepo) CreateBulk(ctx context.Context, chunks []*entity.SourceChunk) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, c := range chunks {
		r.store.chunkPos++
		cp := *c
		cp.Position = r.store.chunkPos
		r.store.chunks = append(r.store.chunks, &cp)
	}
	return nil
}

func (r *fakeChunkRepo) DeleteByEntryId(ctx context.Context, entryId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.chunks[:0]
	for _, c := range r.store.chunks {
		if c.EntryId != entryId {
			kept = append(kept, c)
		}
	}
	r.store.chunks = kept
	return nil
}

func (r *fakeChunkRepo) DeleteByNamespaceId(ctx context.Context, namespaceId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	inNamespace := make(map[uuid.UUID]bool)
	for _, e := range r.store.entries {
		if e.NamespaceId == namespaceId {
			inNamespace[e.Id] = true
		}
	}
	kept := r.store.chunks[:0]
	for _, c := range r.store.chunks {
		if !inNamespace[c.EntryId] {
			kept = append(kept, c)
		}
	}
	r.store.chunks = kept
	return nil
}

func (r *fakeChunkRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.SourceChunk, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*entity.SourceChunk
	for _, c := range r.store.chunks {
		match := true
		for _, s := range specs {
			if v, ok := s.(specification.ByEntryID); ok && c.EntryId != v.EntryID {
				match = false
			}
		}
		if match {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeChunkRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, _ := r.FindAll(ctx, specs...)
	return int64(len(all)), nil
}

func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func (r *fakeChunkRepo) SearchSimilar(ctx context.Context, namespaceId uuid.UUID, emb []float32, limit int) ([]*contract.ScoredSourceChunk, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	ready := make(map[uuid.UUID]*entity.SourceEntry)
	for _, e := range r.store.entries {
		if e.NamespaceId == namespaceId && e.Status == entity.SourceStatusReady {
			ready[e.Id] = e
		}
	}

	var scored []*contract.ScoredSourceChunk
	for _, c := range r.store.chunks {
		entry, ok := ready[c.EntryId]
		if !ok {
			continue
		}
		cp := *c
		scored = append(scored, &contract.ScoredSourceChunk{
			Chunk:      &cp,
			EntryId:    entry.Id,
			EntryTitle: entry.Title,
			Similarity: cosineSimilarity(cp.Embedding, emb),
		})
	}

	sort.SliceStable(scored, func(a, b int) bool {
		if scored[a].Similarity != scored[b].Similarity {
			return scored[a].Similarity > scored[b].Similarity
		}
		return scored[a].Chunk.Position < scored[b].Chunk.Position
	})
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// fakeEmbedder returns a fixed vector per known text and a default for
// everything else, so tests control relative similarity exactly.
type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (f *fakeEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	vec, ok := f.vectors[text]
	if !ok {
		vec = []float32{0, 0, 1}
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: vec},
	}, nil
}

func newTestIndex(embedder embedding.EmbeddingProvider) (*Index, *fakeStore) {
	store := &fakeStore{}
	idx := NewIndex(&fakeFactory{store: store}, embedder, log.New(io.Discard, "", 0))
	return idx, store
}

func TestAddDeduplicatesByContentHash(t *testing.T) {
	ctx := context.Background()
	idx, store := newTestIndex(&fakeEmbedder{})

	first, err := idx.Add(ctx, "ns", "some source text", "k1", "Doc", entity.SourceMetadata{}, "hash-a")
	require.NoError(t, err)
	assert.True(t, first.Created)

	chunksAfterFirst := len(store.chunks)
	assert.Greater(t, chunksAfterFirst, 0)

	second, err := idx.Add(ctx, "ns", "some source text", "k2", "Doc again", entity.SourceMetadata{}, "hash-a")
	require.NoError(t, err)
	assert.False(t, second.Created, "byte-identical content must not create a second entry")
	assert.Equal(t, first.EntryId, second.EntryId)
	assert.Len(t, store.entries, 1)
	assert.Len(t, store.chunks, chunksAfterFirst, "duplicate add must not re-embed")
}

func TestAddSameHashDifferentNamespaces(t *testing.T) {
	ctx := context.Background()
	idx, store := newTestIndex(&fakeEmbedder{})

	a, err := idx.Add(ctx, "ns-a", "text", "k", "Doc", entity.SourceMetadata{}, "hash-x")
	require.NoError(t, err)
	b, err := idx.Add(ctx, "ns-b", "text", "k", "Doc", entity.SourceMetadata{}, "hash-x")
	require.NoError(t, err)

	assert.True(t, a.Created)
	assert.True(t, b.Created, "the hash is only unique within a namespace")
	assert.NotEqual(t, a.EntryId, b.EntryId)
	assert.Len(t, store.entries, 2)
}

func TestSearchUnknownNamespaceIsEmpty(t *testing.T) {
	ctx := context.Background()
	idx, _ := newTestIndex(&fakeEmbedder{})

	result, err := idx.Search(ctx, "never-created", "anything", 5)

	require.NoError(t, err)
	assert.Empty(t, result.Text)
	assert.Empty(t, result.Entries)
	assert.Empty(t, result.Chunks)
}

func TestSearchRanksBySimilarity(t *testing.T) {
	ctx := context.Background()
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"about cats": {1, 0, 0},
		"about dogs": {0, 1, 0},
		"cat query":  {0.9, 0.1, 0},
	}}
	idx, _ := newTestIndex(embedder)

	_, err := idx.Add(ctx, "ns", "about dogs", "k-dogs", "Dogs", entity.SourceMetadata{}, "h-dogs")
	require.NoError(t, err)
	_, err = idx.Add(ctx, "ns", "about cats", "k-cats", "Cats", entity.SourceMetadata{}, "h-cats")
	require.NoError(t, err)

	result, err := idx.Search(ctx, "ns", "cat query", 5)
	require.NoError(t, err)

	require.Len(t, result.Chunks, 2)
	assert.Equal(t, "about cats", result.Chunks[0].Text, "nearest chunk comes first regardless of insertion order")
	assert.Equal(t, "about dogs", result.Chunks[1].Text)
	assert.Contains(t, result.Text, "[Cats]\nabout cats")
	require.Len(t, result.Entries, 2)
	assert.Equal(t, "Cats", result.Entries[0].Title)
}

func TestSearchTieBreaksByInsertionOrder(t *testing.T) {
	ctx := context.Background()
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"first doc":  {1, 0, 0},
		"second doc": {1, 0, 0},
		"query":      {1, 0, 0},
	}}
	idx, _ := newTestIndex(embedder)

	_, err := idx.Add(ctx, "ns", "first doc", "k1", "First", entity.SourceMetadata{}, "h1")
	require.NoError(t, err)
	_, err = idx.Add(ctx, "ns", "second doc", "k2", "Second", entity.SourceMetadata{}, "h2")
	require.NoError(t, err)

	result, err := idx.Search(ctx, "ns", "query", 5)
	require.NoError(t, err)

	require.Len(t, result.Chunks, 2)
	assert.Equal(t, "first doc", result.Chunks[0].Text, "equal similarity resolves to insertion order")
	assert.Equal(t, "second doc", result.Chunks[1].Text)
}

func TestSearchIgnoresPendingAndErroredEntries(t *testing.T) {
	ctx := context.Background()
	embedder := &fakeEmbedder{}
	idx, _ := newTestIndex(embedder)

	// Registered but never embedded: stays pending, invisible to retrieval.
	_, err := idx.AddEntry(ctx, "ns", "k-pending", "Pending", entity.SourceMetadata{}, "h-pending")
	require.NoError(t, err)

	// Failed embedding: flips to errored, also invisible.
	broken, err := idx.AddEntry(ctx, "ns", "k-broken", "Broken", entity.SourceMetadata{}, "h-broken")
	require.NoError(t, err)
	embedder.err = errors.New("backend down")
	require.Error(t, idx.EmbedEntry(ctx, broken.EntryId, "text"))
	embedder.err = nil

	_, err = idx.Add(ctx, "ns", "ready text", "k-ready", "Ready", entity.SourceMetadata{}, "h-ready")
	require.NoError(t, err)

	result, err := idx.Search(ctx, "ns", "query", 5)
	require.NoError(t, err)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, "Ready", result.Entries[0].Title)
}

func TestEmbedEntryFailureMarksErrored(t *testing.T) {
	ctx := context.Background()
	embedder := &fakeEmbedder{}
	idx, store := newTestIndex(embedder)

	added, err := idx.AddEntry(ctx, "ns", "k", "Doc", entity.SourceMetadata{}, "h")
	require.NoError(t, err)

	embedder.err = errors.New("embedding backend down")
	err = idx.EmbedEntry(ctx, added.EntryId, "text")
	require.Error(t, err)

	require.Len(t, store.entries, 1)
	assert.Equal(t, entity.SourceStatusError, store.entries[0].Status)
}

func TestListPaginatesWithinNamespace(t *testing.T) {
	ctx := context.Background()
	idx, _ := newTestIndex(&fakeEmbedder{})

	for _, key := range []string{"a", "b", "c"} {
		_, err := idx.Add(ctx, "ns-mine", key, "k-"+key, "Title "+key, entity.SourceMetadata{}, "h-"+key)
		require.NoError(t, err)
	}
	// A neighboring namespace must never leak into the page.
	_, err := idx.Add(ctx, "ns-other", "x", "k-x", "Other", entity.SourceMetadata{}, "h-x")
	require.NoError(t, err)

	page1, err := idx.List(ctx, "ns-mine", 0, 2)
	require.NoError(t, err)
	require.Len(t, page1.Entries, 2)
	assert.True(t, page1.HasMore)
	assert.Equal(t, "Title a", page1.Entries[0].Title)
	assert.Equal(t, "Title b", page1.Entries[1].Title)

	page2, err := idx.List(ctx, "ns-mine", page1.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, page2.Entries, 1)
	assert.False(t, page2.HasMore)
	assert.Equal(t, "Title c", page2.Entries[0].Title)

	for _, e := range append(page1.Entries, page2.Entries...) {
		assert.NotEqual(t, "Other", e.Title)
	}
}

func TestListUnknownNamespaceIsEmpty(t *testing.T) {
	ctx := context.Background()
	idx, _ := newTestIndex(&fakeEmbedder{})

	page, err := idx.List(ctx, "missing", 0, 10)

	require.NoError(t, err)
	assert.Empty(t, page.Entries)
	assert.False(t, page.HasMore)
}

func TestDeleteRemovesEntryAndChunks(t *testing.T) {
	ctx := context.Background()
	idx, store := newTestIndex(&fakeEmbedder{})

	added, err := idx.Add(ctx, "ns", "text", "k", "Doc", entity.SourceMetadata{}, "h")
	require.NoError(t, err)

	require.NoError(t, idx.Delete(ctx, added.EntryId))

	assert.Empty(t, store.entries)
	assert.Empty(t, store.chunks)
}

func TestDeleteNamespaceWipesEverything(t *testing.T) {
	ctx := context.Background()
	idx, store := newTestIndex(&fakeEmbedder{})

	_, err := idx.Add(ctx, "ns-gone", "text a", "ka", "A", entity.SourceMetadata{}, "ha")
	require.NoError(t, err)
	_, err = idx.Add(ctx, "ns-stays", "text b", "kb", "B", entity.SourceMetadata{}, "hb")
	require.NoError(t, err)

	require.NoError(t, idx.DeleteNamespace(ctx, "ns-gone"))

	require.Len(t, store.entries, 1)
	assert.Equal(t, "B", store.entries[0].Title)
	require.Len(t, store.chunks, 1)
}
