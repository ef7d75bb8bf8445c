package extractor

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"articlegen-be/pkg/apperror"
	"articlegen-be/pkg/llm"
)

const (
	pdfSystemPrompt  = "You transform PDF files into text."
	textSystemPrompt = "You transform text files into text."
)

// Extractor converts raw uploaded bytes of a known media kind into plain text.
// Exact text/plain input bypasses the model entirely; every other decodable
// text flavor is normalized through one transcription call to strip
// formatting noise, and PDF-like formats are transcribed from their stored URL.
type Extractor struct {
	llmProvider llm.LLMProvider
}

func New(llmProvider llm.LLMProvider) *Extractor {
	return &Extractor{llmProvider: llmProvider}
}

// Extract returns the plain text content of the upload.
// fileURL is the retrievable location of the already-stored blob; it is only
// consulted for opaque formats the model must transcribe remotely.
func (e *Extractor) Extract(ctx context.Context, data []byte, mimeType, filename, fileURL string) (string, error) {
	lower := strings.ToLower(mimeType)

	switch {
	case strings.Contains(lower, "pdf"):
		return e.extractPdf(ctx, fileURL, filename)
	case strings.Contains(lower, "text"):
		return e.extractText(ctx, data, lower)
	default:
		return "", apperror.UnsupportedMediaType(mimeType)
	}
}

func (e *Extractor) extractText(ctx context.Context, data []byte, mimeType string) (string, error) {
	if !utf8.Valid(data) {
		return "", apperror.Newf(apperror.CodeUnsupportedMediaType, "content declared %s is not valid UTF-8", mimeType)
	}
	text := string(data)

	// Exact plain text needs no model round trip
	if mimeType == "text/plain" {
		return text, nil
	}

	result, err := e.llmProvider.Chat(ctx, []llm.Message{
		{Role: "system", Content: textSystemPrompt},
		{Role: "user", Content: fmt.Sprintf("%s\n\nExtract the text and print it without explaining that you'll do so.", text)},
	})
	if err != nil {
		return "", apperror.UpstreamFailure("extract text content", err)
	}
	return result, nil
}

func (e *Extractor) extractPdf(ctx context.Context, fileURL, filename string) (string, error) {
	prompt := fmt.Sprintf(
		"File: %s (%s)\n\nExtract the text from the PDF and print it without explaining you'll do so.",
		filename, fileURL,
	)

	result, err := e.llmProvider.Chat(ctx, []llm.Message{
		{Role: "system", Content: pdfSystemPrompt},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return "", apperror.UpstreamFailure("extract pdf content", err)
	}
	return result, nil
}
