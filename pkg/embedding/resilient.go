package embedding

import (
	"time"

	"github.com/sony/gobreaker"

	"articlegen-be/pkg/apperror"
)

// ResilientProvider wraps an EmbeddingProvider with bounded retries and a
// circuit breaker, mirroring the LLM decorator.
type ResilientProvider struct {
	inner      EmbeddingProvider
	breaker    *gobreaker.CircuitBreaker
	maxRetries int
	baseDelay  time.Duration
}

var _ EmbeddingProvider = &ResilientProvider{}

func NewResilientProvider(inner EmbeddingProvider, maxRetries int) *ResilientProvider {
	if maxRetries < 0 {
		maxRetries = 0
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "embedding",
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

func (p *ResilientProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	var lastErr error
	delay := p.baseDelay

	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(delay)
			delay *= 2
		}

		res, err := p.breaker.Execute(func() (interface{}, error) {
			return p.inner.Generate(text, taskType)
		})
		if err == nil {
			return res.(*EmbeddingResponse), nil
		}
		lastErr = err

		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			break
		}
	}

	return nil, apperror.UpstreamFailure("embedding.generate", lastErr)
}
