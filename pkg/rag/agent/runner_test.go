package agent

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"articlegen-be/internal/constant"
	"articlegen-be/pkg/apperror"
	"articlegen-be/pkg/llm"
)

type scriptedLLM struct {
	completions []*llm.Completion
	err         error
	calls       int
}

func (s *scriptedLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return "", errors.New("not used")
}

func (s *scriptedLLM) ChatWithTools(ctx context.Context, history []llm.Message, tools []llm.Tool, options ...llm.Option) (*llm.Completion, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.calls >= len(s.completions) {
		return &llm.Completion{Text: "fallthrough"}, nil
	}
	c := s.completions[s.calls]
	s.calls++
	return c, nil
}

func (s *scriptedLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return "", errors.New("not used")
}

type memoryStore struct {
	messages []llm.Message
}

func (m *memoryStore) Append(ctx context.Context, role, content, toolName string) error {
	m.messages = append(m.messages, llm.Message{Role: role, Content: content, ToolName: toolName})
	return nil
}

func (m *memoryStore) History(ctx context.Context) ([]llm.Message, error) {
	return m.messages, nil
}

func searchCall(query string) *llm.Completion {
	return &llm.Completion{ToolCall: &llm.ToolCall{
		Name:      "searchTool",
		Arguments: map[string]interface{}{"query": query},
	}}
}

func discard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestRunImmediateAnswer(t *testing.T) {
	provider := &scriptedLLM{completions: []*llm.Completion{{Text: "final answer"}}}
	store := &memoryStore{}
	runner := NewRunner(provider, nil, 3, discard())

	out, err := runner.Run(context.Background(), store, "write about cats")

	require.NoError(t, err)
	assert.Equal(t, "final answer", out)

	// user prompt + assistant answer
	require.Len(t, store.messages, 2)
	assert.Equal(t, constant.ThreadMessageRoleUser, store.messages[0].Role)
	assert.Equal(t, constant.ThreadMessageRoleAssistant, store.messages[1].Role)
}

func TestRunToolThenAnswer(t *testing.T) {
	provider := &scriptedLLM{completions: []*llm.Completion{
		searchCall("cat behavior"),
		{Text: "cats are great"},
	}}
	var searched []string
	search := func(ctx context.Context, query string) (string, error) {
		searched = append(searched, query)
		return "search context", nil
	}
	store := &memoryStore{}
	runner := NewRunner(provider, search, 3, discard())

	out, err := runner.Run(context.Background(), store, "write about cats")

	require.NoError(t, err)
	assert.Equal(t, "cats are great", out)
	assert.Equal(t, []string{"cat behavior"}, searched)

	// user, assistant intent, tool result, assistant answer
	require.Len(t, store.messages, 4)
	assert.Equal(t, constant.ThreadMessageRoleTool, store.messages[2].Role)
	assert.Equal(t, "search context", store.messages[2].Content)
	assert.Equal(t, "searchTool", store.messages[2].ToolName)
}

func TestRunSearchErrorFedBackToModel(t *testing.T) {
	provider := &scriptedLLM{completions: []*llm.Completion{
		searchCall("anything"),
		{Text: "answered without sources"},
	}}
	search := func(ctx context.Context, query string) (string, error) {
		return "", errors.New("index unavailable")
	}
	store := &memoryStore{}
	runner := NewRunner(provider, search, 3, discard())

	out, err := runner.Run(context.Background(), store, "prompt")

	require.NoError(t, err)
	assert.Equal(t, "answered without sources", out)
	assert.Contains(t, store.messages[2].Content, "Error: search failed")
}

func TestRunUnknownToolFedBackToModel(t *testing.T) {
	provider := &scriptedLLM{completions: []*llm.Completion{
		{ToolCall: &llm.ToolCall{Name: "deleteEverything", Arguments: map[string]interface{}{}}},
		{Text: "ok"},
	}}
	store := &memoryStore{}
	runner := NewRunner(provider, nil, 3, discard())

	_, err := runner.Run(context.Background(), store, "prompt")

	require.NoError(t, err)
	assert.Contains(t, store.messages[2].Content, `unknown tool "deleteEverything"`)
}

func TestRunMissingQueryFedBackToModel(t *testing.T) {
	provider := &scriptedLLM{completions: []*llm.Completion{
		{ToolCall: &llm.ToolCall{Name: "searchTool", Arguments: map[string]interface{}{}}},
		{Text: "ok"},
	}}
	store := &memoryStore{}
	runner := NewRunner(provider, nil, 3, discard())

	_, err := runner.Run(context.Background(), store, "prompt")

	require.NoError(t, err)
	assert.Contains(t, store.messages[2].Content, "non-empty query")
}

func TestRunStepBudgetExhausted(t *testing.T) {
	// The model keeps asking for tools and never settles.
	provider := &scriptedLLM{completions: []*llm.Completion{
		searchCall("one"),
		{Text: "partial draft", ToolCall: searchCall("two").ToolCall},
		searchCall("three"),
	}}
	search := func(ctx context.Context, query string) (string, error) {
		return "results", nil
	}
	store := &memoryStore{}
	runner := NewRunner(provider, search, 3, discard())

	out, err := runner.Run(context.Background(), store, "prompt")

	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeStepBudgetExhausted))
	assert.Equal(t, "partial draft", out, "exhaustion still surfaces the last text the model produced")
}

func TestRunProviderErrorAborts(t *testing.T) {
	provider := &scriptedLLM{err: errors.New("provider down")}
	store := &memoryStore{}
	runner := NewRunner(provider, nil, 3, discard())

	_, err := runner.Run(context.Background(), store, "prompt")

	assert.Error(t, err)
}

func TestNewRunnerDefaultsStepBudget(t *testing.T) {
	runner := NewRunner(&scriptedLLM{}, nil, 0, discard())
	assert.Equal(t, 3, runner.maxSteps)
}
