package events

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewSourceIngested(t *testing.T) {
	userId, articleId, entryId := uuid.New(), uuid.New(), uuid.New()

	evt := NewSourceIngested(userId, articleId, entryId, "Q3 Report")

	assert.Equal(t, TypeSourceIngested, evt.EventType())
	assert.Equal(t, userId, evt.Payload()["user_id"])
	assert.Equal(t, articleId, evt.Payload()["article_id"])
	assert.Equal(t, entryId, evt.Payload()["entry_id"])
	assert.Equal(t, "Q3 Report", evt.Payload()["title"])
	assert.False(t, evt.Timestamp().IsZero())
}

func TestNewArticleCompleted(t *testing.T) {
	userId, articleId := uuid.New(), uuid.New()

	evt := NewArticleCompleted(userId, articleId, "My Article")

	assert.Equal(t, TypeArticleCompleted, evt.EventType())
	assert.Equal(t, articleId, evt.Payload()["article_id"])
	assert.Equal(t, "My Article", evt.Payload()["title"])
}
