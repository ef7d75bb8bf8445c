package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"articlegen-be/internal/entity"
	"articlegen-be/pkg/rag/index"
)

func TestBuildContextTextEmpty(t *testing.T) {
	tool := &Tool{}

	out := tool.buildContextText(&index.SearchResult{})

	assert.Equal(t, "Found no matching sources.", out)
}

func TestBuildContextTextWithEntries(t *testing.T) {
	tool := &Tool{}
	result := &index.SearchResult{
		Text: "[Q3 Report]\nrevenue grew\n\n[Q4 Report]\nrevenue fell",
		Entries: []*entity.SourceEntry{
			{Title: "Q3 Report"},
			{Title: "Q4 Report"},
		},
	}

	out := tool.buildContextText(result)

	assert.Contains(t, out, "Found results in Q3 Report, Q4 Report.")
	assert.Contains(t, out, "revenue grew")
}

func TestBuildContextTextKeepsTextFromUntitledEntries(t *testing.T) {
	tool := &Tool{}
	result := &index.SearchResult{
		Text:    "pasted snippet about revenue",
		Entries: []*entity.SourceEntry{{Title: ""}},
	}

	out := tool.buildContextText(result)

	assert.Contains(t, out, "Found results.")
	assert.Contains(t, out, "pasted snippet about revenue")
}

func TestBuildContextTextSkipsUntitledInHeader(t *testing.T) {
	tool := &Tool{}
	result := &index.SearchResult{
		Text: "[Q3 Report]\nrevenue grew\n\npasted snippet",
		Entries: []*entity.SourceEntry{
			{Title: "Q3 Report"},
			{Title: ""},
		},
	}

	out := tool.buildContextText(result)

	assert.Contains(t, out, "Found results in Q3 Report.")
	assert.Contains(t, out, "pasted snippet")
}
