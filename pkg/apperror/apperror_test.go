package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	plain := New(CodeNotFound, "article not found")
	assert.Equal(t, "NOT_FOUND: article not found", plain.Error())

	wrapped := Wrap(CodeUpstreamFailure, "embedding call", errors.New("timeout"))
	assert.Equal(t, "UPSTREAM_FAILURE: embedding call: timeout", wrapped.Error())
}

func TestUnwrapPreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(CodeUpstreamFailure, "llm chat", cause)

	assert.ErrorIs(t, err, cause)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeNotFound, CodeOf(NotFound("article")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))

	// Codes survive wrapping with the stdlib verbs.
	wrapped := fmt.Errorf("outer context: %w", Unauthenticated("no token"))
	assert.Equal(t, CodeUnauthenticated, CodeOf(wrapped))
}

func TestIs(t *testing.T) {
	assert.True(t, Is(NotFound("x"), CodeNotFound))
	assert.False(t, Is(NotFound("x"), CodeConflict))
	assert.False(t, Is(nil, CodeNotFound))
}
