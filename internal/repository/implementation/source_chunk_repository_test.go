package implementation

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"

	"articlegen-be/internal/mapper"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)
	return db
}

func TestSimilarityQueryOrdersBySimilarityThenPosition(t *testing.T) {
	db := dryRunDB(t)
	repo := &SourceChunkRepositoryImpl{db: db, mapper: mapper.NewSourceChunkMapper()}

	vec := pgvector.NewVector([]float32{0.1, 0.2, 0.3})
	tx := repo.similarityQuery(db, uuid.New(), vec, 5).Find(&[]scoredChunkRow{})
	sql := tx.Statement.SQL.String()

	simIdx := strings.Index(sql, "ORDER BY similarity DESC")
	require.GreaterOrEqual(t, simIdx, 0, "similarity must drive the ordering, got: %s", sql)

	posIdx := strings.Index(sql, "source_chunks.position ASC")
	require.GreaterOrEqual(t, posIdx, 0, "insertion position must break ties, got: %s", sql)
	assert.Greater(t, posIdx, simIdx, "position is the secondary sort key, got: %s", sql)

	assert.Contains(t, sql, "1 - (source_chunks.embedding <=> ?) as similarity")
	assert.Contains(t, sql, "source_entries.status = ?")
}
