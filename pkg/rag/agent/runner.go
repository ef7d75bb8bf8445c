package agent

import (
	"context"
	"fmt"
	"log"

	"articlegen-be/internal/constant"
	"articlegen-be/pkg/apperror"
	"articlegen-be/pkg/llm"
)

// SearchFunc resolves one search tool invocation. The namespace is bound by
// the caller before the run starts; the model only ever supplies the query.
type SearchFunc func(ctx context.Context, query string) (string, error)

// ThreadStore persists conversation turns. The runner appends every turn it
// produces so an aborted run leaves a replayable trail.
type ThreadStore interface {
	Append(ctx context.Context, role, content, toolName string) error
	History(ctx context.Context) ([]llm.Message, error)
}

// Runner drives one bounded tool-augmented generation run. Each model
// completion consumes one step; a run that still wants tools when the
// budget is spent ends with CodeStepBudgetExhausted and whatever text the
// model produced last.
type Runner struct {
	llmProvider llm.LLMProvider
	search      SearchFunc
	logger      *log.Logger
	maxSteps    int
}

func NewRunner(llmProvider llm.LLMProvider, search SearchFunc, maxSteps int, logger *log.Logger) *Runner {
	if maxSteps <= 0 {
		maxSteps = 3
	}
	return &Runner{
		llmProvider: llmProvider,
		search:      search,
		logger:      logger,
		maxSteps:    maxSteps,
	}
}

var searchTool = llm.Tool{
	Name:        "searchTool",
	Description: "Search the knowledge base for relevant information to help answer user questions",
	Parameters: llm.ToolParameters{
		Properties: map[string]llm.ToolProperty{
			"query": {
				Type:        "string",
				Description: "The search query to find relevant information",
			},
		},
		Required: []string{"query"},
	},
}

// Run appends the user prompt to the thread and loops the model until it
// produces final text or the step budget runs out. Tool failures are fed
// back to the model as tool results rather than aborting the run.
func (r *Runner) Run(ctx context.Context, store ThreadStore, prompt string) (string, error) {
	if err := store.Append(ctx, constant.ThreadMessageRoleUser, prompt, ""); err != nil {
		return "", err
	}

	lastText := ""

	for step := 1; step <= r.maxSteps; step++ {
		history, err := store.History(ctx)
		if err != nil {
			return "", err
		}

		messages := make([]llm.Message, 0, len(history)+1)
		messages = append(messages, llm.Message{Role: "system", Content: constant.ArticleAgentPrompt})
		messages = append(messages, history...)

		completion, err := r.llmProvider.ChatWithTools(ctx, messages, []llm.Tool{searchTool})
		if err != nil {
			return "", err
		}

		if completion.Text != "" {
			lastText = completion.Text
		}

		if completion.ToolCall == nil {
			if err := store.Append(ctx, constant.ThreadMessageRoleAssistant, completion.Text, ""); err != nil {
				return "", err
			}
			r.logger.Printf("[AGENT] Run finished in %d step(s)", step)
			return completion.Text, nil
		}

		// The model wants a tool. Record its intent, execute, record the
		// result, and go around again.
		intent := fmt.Sprintf("Calling tool %s with query: %s", completion.ToolCall.Name, r.queryOf(completion.ToolCall))
		if err := store.Append(ctx, constant.ThreadMessageRoleAssistant, intent, completion.ToolCall.Name); err != nil {
			return "", err
		}

		toolResult := r.dispatch(ctx, completion.ToolCall)
		if err := store.Append(ctx, constant.ThreadMessageRoleTool, toolResult, completion.ToolCall.Name); err != nil {
			return "", err
		}
	}

	r.logger.Printf("[AGENT] Step budget (%d) exhausted before a final answer", r.maxSteps)
	return lastText, apperror.Newf(apperror.CodeStepBudgetExhausted, "run did not complete within %d steps", r.maxSteps)
}

func (r *Runner) queryOf(call *llm.ToolCall) string {
	query, _ := call.StringArg("query")
	return query
}

func (r *Runner) dispatch(ctx context.Context, call *llm.ToolCall) string {
	if call.Name != searchTool.Name {
		return fmt.Sprintf("Error: unknown tool %q", call.Name)
	}

	query, ok := call.StringArg("query")
	if !ok || query == "" {
		return "Error: searchTool requires a non-empty query argument"
	}

	result, err := r.search(ctx, query)
	if err != nil {
		r.logger.Printf("[WARN] searchTool failed: %v", err)
		return fmt.Sprintf("Error: search failed: %v", err)
	}
	return result
}
