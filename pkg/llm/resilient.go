package llm

import (
	"context"
	"time"

	"github.com/sony/gobreaker"

	"articlegen-be/pkg/apperror"
)

// ResilientProvider decorates an LLMProvider with bounded retries and a
// circuit breaker. Transient upstream failures are retried with backoff;
// once retries are exhausted the error surfaces as UpstreamFailure.
type ResilientProvider struct {
	inner      LLMProvider
	breaker    *gobreaker.CircuitBreaker
	maxRetries int
	baseDelay  time.Duration
}

var _ LLMProvider = &ResilientProvider{}

func NewResilientProvider(inner LLMProvider, maxRetries int) *ResilientProvider {
	if maxRetries < 0 {
		maxRetries = 0
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "llm",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &ResilientProvider{
		inner:      inner,
		breaker:    cb,
		maxRetries: maxRetries,
		baseDelay:  500 * time.Millisecond,
	}
}

func (p *ResilientProvider) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	res, err := p.execute(ctx, "llm.chat", func() (interface{}, error) {
		return p.inner.Chat(ctx, history, options...)
	})
	if err != nil {
		return "", err
	}
	return res.(string), nil
}

func (p *ResilientProvider) ChatWithTools(ctx context.Context, history []Message, tools []Tool, options ...Option) (*Completion, error) {
	res, err := p.execute(ctx, "llm.chat_with_tools", func() (interface{}, error) {
		return p.inner.ChatWithTools(ctx, history, tools, options...)
	})
	if err != nil {
		return nil, err
	}
	return res.(*Completion), nil
}

func (p *ResilientProvider) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	res, err := p.execute(ctx, "llm.generate", func() (interface{}, error) {
		return p.inner.Generate(ctx, prompt, options...)
	})
	if err != nil {
		return "", err
	}
	return res.(string), nil
}

func (p *ResilientProvider) execute(ctx context.Context, op string, fn func() (interface{}, error)) (interface{}, error) {
	var lastErr error
	delay := p.baseDelay

	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, apperror.UpstreamFailure(op, ctx.Err())
			case <-time.After(delay):
			}
			delay *= 2
		}

		res, err := p.breaker.Execute(fn)
		if err == nil {
			return res, nil
		}
		lastErr = err

		// Breaker open: backing off further attempts is pointless
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			break
		}
	}

	return nil, apperror.UpstreamFailure(op, lastErr)
}
