package extractor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"articlegen-be/pkg/apperror"
	"articlegen-be/pkg/llm"
)

type fakeLLM struct {
	chatResponse string
	chatErr      error
	chatCalls    int
	lastHistory  []llm.Message
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.chatCalls++
	f.lastHistory = history
	return f.chatResponse, f.chatErr
}

func (f *fakeLLM) ChatWithTools(ctx context.Context, history []llm.Message, tools []llm.Tool, options ...llm.Option) (*llm.Completion, error) {
	return &llm.Completion{Text: f.chatResponse}, f.chatErr
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.chatResponse, f.chatErr
}

func TestExtractPlainTextSkipsModel(t *testing.T) {
	provider := &fakeLLM{}
	e := New(provider)

	out, err := e.Extract(context.Background(), []byte("raw note content"), "text/plain", "note.txt", "http://x/note.txt")

	assert.NoError(t, err)
	assert.Equal(t, "raw note content", out)
	assert.Equal(t, 0, provider.chatCalls, "plain text must not hit the model")
}

func TestExtractMarkdownGoesThroughModel(t *testing.T) {
	provider := &fakeLLM{chatResponse: "cleaned text"}
	e := New(provider)

	out, err := e.Extract(context.Background(), []byte("# Title\nbody"), "text/markdown", "doc.md", "http://x/doc.md")

	assert.NoError(t, err)
	assert.Equal(t, "cleaned text", out)
	assert.Equal(t, 1, provider.chatCalls)
}

func TestExtractPdfUsesFileURL(t *testing.T) {
	provider := &fakeLLM{chatResponse: "pdf text"}
	e := New(provider)

	out, err := e.Extract(context.Background(), nil, "application/pdf", "report.pdf", "http://x/report.pdf")

	assert.NoError(t, err)
	assert.Equal(t, "pdf text", out)
	assert.Len(t, provider.lastHistory, 2)
	assert.Contains(t, provider.lastHistory[1].Content, "http://x/report.pdf")
}

func TestExtractUnsupportedMime(t *testing.T) {
	e := New(&fakeLLM{})

	_, err := e.Extract(context.Background(), []byte{0x00}, "image/png", "pic.png", "http://x/pic.png")

	assert.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.CodeUnsupportedMediaType))
	assert.Contains(t, err.Error(), "image/png")
}

func TestExtractInvalidUTF8(t *testing.T) {
	e := New(&fakeLLM{})

	_, err := e.Extract(context.Background(), []byte{0xff, 0xfe, 0xfd}, "text/plain", "bad.txt", "http://x/bad.txt")

	assert.True(t, apperror.Is(err, apperror.CodeUnsupportedMediaType))
}

func TestExtractUpstreamFailure(t *testing.T) {
	provider := &fakeLLM{chatErr: errors.New("model offline")}
	e := New(provider)

	_, err := e.Extract(context.Background(), []byte("csv,data"), "text/csv", "data.csv", "http://x/data.csv")

	assert.True(t, apperror.Is(err, apperror.CodeUpstreamFailure))
}
