package search

import (
	"context"
	"fmt"
	"log"
	"strings"

	"articlegen-be/internal/constant"
	"articlegen-be/pkg/llm"
	"articlegen-be/pkg/rag/index"
)

// searchLimit matches the retrieval window the drafting prompts were tuned
// against. Widening it dilutes the synthesis step with weaker passages.
const searchLimit = 5

// Tool retrieves passages for a query and synthesizes them into prose the
// agent can use directly. It is a two-stage read: vector search, then one
// interpretation completion. The synthesized text is returned verbatim.
type Tool struct {
	index       *index.Index
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewTool(idx *index.Index, llmProvider llm.LLMProvider, logger *log.Logger) *Tool {
	return &Tool{
		index:       idx,
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Search runs retrieval within one namespace and returns the synthesized
// answer. An empty namespace is not an error; the model is told no sources
// matched and responds accordingly.
func (t *Tool) Search(ctx context.Context, namespace, query string) (string, error) {
	searchResult, err := t.index.Search(ctx, namespace, query, searchLimit)
	if err != nil {
		return "", err
	}

	contextText := t.buildContextText(searchResult)

	history := []llm.Message{
		{Role: "system", Content: constant.SearchInterpreterPrompt},
		{Role: "user", Content: fmt.Sprintf("User asked: %q\n\nSearch results: %s", query, contextText)},
	}

	response, err := t.llmProvider.Chat(ctx, history)
	if err != nil {
		t.logger.Printf("[ERROR] Search synthesis failed: %v", err)
		return "", err
	}

	return response, nil
}

func (t *Tool) buildContextText(result *index.SearchResult) string {
	if result.Text == "" {
		return "Found no matching sources."
	}

	titles := make([]string, 0, len(result.Entries))
	for _, e := range result.Entries {
		if e.Title != "" {
			titles = append(titles, e.Title)
		}
	}

	if len(titles) == 0 {
		return fmt.Sprintf("Found results. Here is the context:\n\n%s", result.Text)
	}

	return fmt.Sprintf("Found results in %s. Here is the context:\n\n%s", strings.Join(titles, ", "), result.Text)
}
